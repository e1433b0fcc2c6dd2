package models

// Role is the organizational classification of a user.
type Role string

const (
	RoleDinamizador   Role = "Dinamizador"
	RoleInfocenter    Role = "Infocenter"
	RolePsicopedagogo Role = "Psicopedagogo"
	RoleFacilitador   Role = "Facilitador"
	RoleAprendiz      Role = "Aprendiz Tecnoacademia"
)

var roles = []Role{RoleDinamizador, RoleInfocenter, RolePsicopedagogo, RoleFacilitador, RoleAprendiz}

// Roles returns the fixed role set in display order.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// Valid reports whether r is one of the predefined roles.
func (r Role) Valid() bool {
	for _, v := range roles {
		if v == r {
			return true
		}
	}
	return false
}

// ParseRole maps a role name to its Role. Matching is exact.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User represents a member of the center's staff or student body.
// It maps to the `users` table in SQLite.
type User struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Role  Role   `db:"role" json:"role"`
}

// SeedUsers returns the directory contents a fresh console starts with.
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "Juan Pérez", Email: "juan@example.com", Role: RoleDinamizador},
		{ID: 2, Name: "María García", Email: "maria@example.com", Role: RoleInfocenter},
		{ID: 3, Name: "Carlos Rodríguez", Email: "carlos@example.com", Role: RolePsicopedagogo},
	}
}
