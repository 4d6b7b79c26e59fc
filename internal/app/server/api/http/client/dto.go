package client

import "credvault/internal/domain/client"

type listOutput struct {
	Body []client.Client
}

type createInput struct {
	Body client.CreateRequest
}

type createOutput struct {
	Body client.Client
}

type getInput struct {
	ID string `path:"id" doc:"Client id"`
}

type getOutput struct {
	Body client.Client
}

type updateInput struct {
	ID   string `path:"id"`
	Body client.UpdateRequest
}

type updateOutput struct {
	Body client.Client
}

type deleteInput struct {
	ID string `path:"id"`
}

type deleteOutput struct {
	Body StatusResponse
}

type touchInput struct {
	ID string `path:"id"`
}

type touchOutput struct {
	Status int
	Body   StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}
