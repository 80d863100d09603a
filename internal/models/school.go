package models

import "time"

// School es un colegio de la red. Version se incrementa en cada
// actualización para detectar escrituras concurrentes.
type School struct {
	ID         int       `db:"school_id" json:"school_id"`
	Name       string    `db:"school_name" json:"school_name"`
	RBD        string    `db:"rbd" json:"rbd,omitempty"`
	Comuna     string    `db:"comuna" json:"comuna,omitempty"`
	Direccion  string    `db:"direccion" json:"direccion,omitempty"`
	Telefono   string    `db:"telefono" json:"telefono,omitempty"`
	AdminEmail string    `db:"admin_email" json:"admin_email,omitempty"`
	Version    int       `db:"version" json:"version"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
