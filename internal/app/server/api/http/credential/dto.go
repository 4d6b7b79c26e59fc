package credential

import "credvault/internal/domain/credential"

type listInput struct {
	ClientID string `query:"clientId" required:"false" doc:"Limit to one client"`
}

type listOutput struct {
	Body []credential.Credential
}

type createInput struct {
	Body credential.CreateRequest
}

type createOutput struct {
	Body credential.Credential
}

type createEnvInput struct {
	Body CreateEnvRequest
}

// CreateEnvRequest is the typed form for environment-variable bundles.
type CreateEnvRequest struct {
	ClientID       string              `json:"clientId"`
	Name           string              `json:"name"`
	Environment    string              `json:"environment"`
	URL            string              `json:"url,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Tags           []string            `json:"tags,omitempty"`
	Visibility     string              `json:"visibility,omitempty"`
	AllowedUserIDs []string            `json:"allowedUserIds,omitempty"`
	EnvVars        []credential.EnvVar `json:"envVars"`
}

type getInput struct {
	ID string `path:"id" doc:"Credential id"`
}

type getOutput struct {
	Body credential.Credential
}

type envInput struct {
	ID string `path:"id"`
}

type envOutput struct {
	Body EnvResponse
}

// EnvResponse is the bundle decoded back into ordered pairs for editing.
type EnvResponse struct {
	EnvVars []credential.EnvVar `json:"envVars"`
}

type updateInput struct {
	ID   string `path:"id"`
	Body credential.UpdateRequest
}

type updateOutput struct {
	Body credential.Credential
}

type visibilityInput struct {
	ID   string `path:"id"`
	Body credential.VisibilityRequest
}

type visibilityOutput struct {
	Body credential.Credential
}

type deleteInput struct {
	ID string `path:"id"`
}

type deleteOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}
