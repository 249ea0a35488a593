package models

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug,omitempty"`
	Gender string `json:"gender,omitempty"`
}
