package models

// Roles del sistema, ordenados de mayor a menor privilegio.
const (
	RoleOwner          = "owner"
	RoleAdmin          = "admin"
	RoleOficinaCentral = "oficina_central"
	RoleAdminColegio   = "admin_colegio"
	RoleUserColegio    = "user_colegio"
)

// RoleRank asigna un rango numérico a cada rol; un rango menor implica
// mayor privilegio.
var RoleRank = map[string]int{
	RoleOwner:          0,
	RoleAdmin:          1,
	RoleOficinaCentral: 2,
	RoleAdminColegio:   3,
	RoleUserColegio:    4,
}

// RoleAtLeast indica si role tiene al menos el privilegio de required.
func RoleAtLeast(role, required string) bool {
	r, ok := RoleRank[role]
	if !ok {
		return false
	}
	req, ok := RoleRank[required]
	if !ok {
		return false
	}
	return r <= req
}

// Orígenes de creación de una solicitud.
const (
	CreatedWithWebApp = "webapp"
	CreatedWithGForm  = "gform"
)

// Opciones de jefatura del formulario de solicitud.
const (
	JefaturaCon      = "Con Jefatura"
	JefaturaSin      = "Sin Jefatura"
	JefaturaNoAplica = "No Aplica"
)

// ValidRoles lista los roles reconocidos.
var ValidRoles = map[string]struct{}{
	RoleOwner:          {},
	RoleAdmin:          {},
	RoleOficinaCentral: {},
	RoleAdminColegio:   {},
	RoleUserColegio:    {},
}
