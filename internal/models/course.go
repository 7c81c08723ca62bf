package models

import (
	"github.com/go-playground/validator/v10"
)

// SavedCourse stores raw scores only; status is derived on every read.
type SavedCourse struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Midterm string `json:"midterm"`
	Final   string `json:"final"`
}

func (c *SavedCourse) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
