package tag

import "strings"

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

type CreateTagDTO struct {
	Name string `json:"name"`
}

func (d *CreateTagDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return &ValidationError{Msg: "name is required"}
	}
	if len(d.Name) > 100 {
		return &ValidationError{Msg: "name must be at most 100 characters"}
	}
	return nil
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
