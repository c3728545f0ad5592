package model

import "time"

// Method is an open-vocabulary NDT method name (UT, RT, MT, ...). Users
// extend the list implicitly by submitting an entry with a new value.
type Method struct {
	ID        string    `json:"id"`         // methods.id
	Name      string    `json:"name"`       // methods.name (unique)
	CreatedAt time.Time `json:"created_at"` // methods.created_at
}

// Company is an open-vocabulary employer/client name, extended the same
// way as Method.
type Company struct {
	ID        string    `json:"id"`         // companies.id
	Name      string    `json:"name"`       // companies.name (unique)
	CreatedAt time.Time `json:"created_at"` // companies.created_at
}
