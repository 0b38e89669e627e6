package integration

type CreateIntegrationInput struct {
	Name    string `json:"name" binding:"required,max=100" example:"Team webhook"`
	Type    Type   `json:"type" binding:"required,oneof=webhook email zapier slack discord custom sheets" example:"webhook"`
	Enabled *bool  `json:"enabled"`
	Config  Config `json:"config"`
}

type UpdateIntegrationInput struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Enabled *bool   `json:"enabled"`
	Config  *Config `json:"config"`
}
