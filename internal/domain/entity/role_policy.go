package entity

// Roles válidos para Account.
const (
	RoleOwner        = "owner"
	RoleManager      = "manager"
	RoleVeterinarian = "veterinarian"
	RoleWorker       = "worker"
	RoleAccountant   = "accountant"
)

// PolicyVersion versión de la tabla de políticas por rol. Incrementar al cambiar cualquier fila.
const PolicyVersion = 1

// Capability nombre de un permiso individual (coincide con el campo JSON).
type Capability string

const (
	CapFarmOwner       Capability = "is_farm_owner"
	CapManageAnimals   Capability = "can_manage_animals"
	CapManageHealth    Capability = "can_manage_health"
	CapManageFeeding   Capability = "can_manage_feeding"
	CapManageInventory Capability = "can_manage_inventory"
	CapManageSales     Capability = "can_manage_sales"
	CapManageEmployees Capability = "can_manage_employees"
	CapViewReports     Capability = "can_view_reports"
)

// Permissions banderas derivadas del rol. Nunca se asignan desde el cliente.
type Permissions struct {
	IsFarmOwner        bool
	CanManageAnimals   bool
	CanManageHealth    bool
	CanManageFeeding   bool
	CanManageInventory bool
	CanManageSales     bool
	CanManageEmployees bool
	CanViewReports     bool
}

// Has informa si la capacidad está concedida. Capacidades desconocidas: false.
func (p Permissions) Has(c Capability) bool {
	switch c {
	case CapFarmOwner:
		return p.IsFarmOwner
	case CapManageAnimals:
		return p.CanManageAnimals
	case CapManageHealth:
		return p.CanManageHealth
	case CapManageFeeding:
		return p.CanManageFeeding
	case CapManageInventory:
		return p.CanManageInventory
	case CapManageSales:
		return p.CanManageSales
	case CapManageEmployees:
		return p.CanManageEmployees
	case CapViewReports:
		return p.CanViewReports
	default:
		return false
	}
}

var rolePolicy = map[string]Permissions{
	RoleOwner: {
		IsFarmOwner: true, CanManageAnimals: true, CanManageHealth: true, CanManageFeeding: true,
		CanManageInventory: true, CanManageSales: true, CanManageEmployees: true, CanViewReports: true,
	},
	RoleManager: {
		CanManageAnimals: true, CanManageHealth: true, CanManageFeeding: true,
		CanManageInventory: true, CanManageSales: true, CanViewReports: true,
	},
	RoleVeterinarian: {
		CanManageAnimals: true, CanManageHealth: true,
	},
	RoleWorker: {
		CanManageAnimals: true, CanManageFeeding: true,
	},
	RoleAccountant: {
		CanManageInventory: true, CanManageSales: true, CanViewReports: true,
	},
}

var roleDisplay = map[string]string{
	RoleOwner:        "Farm Owner",
	RoleManager:      "Farm Manager",
	RoleVeterinarian: "Veterinarian",
	RoleWorker:       "Farm Worker",
	RoleAccountant:   "Accountant",
}

// DeriveFlags devuelve las banderas del rol. Un rol desconocido no concede nada.
func DeriveFlags(role string) Permissions {
	return rolePolicy[role]
}

// IsKnownRole informa si el rol está en la tabla.
func IsKnownRole(role string) bool {
	_, ok := rolePolicy[role]
	return ok
}

// RolePolicy copia de la tabla completa.
func RolePolicy() map[string]Permissions {
	out := make(map[string]Permissions, len(rolePolicy))
	for k, v := range rolePolicy {
		out[k] = v
	}
	return out
}

// RoleDisplay nombre legible del rol ("" si es desconocido).
func RoleDisplay(role string) string {
	return roleDisplay[role]
}

// Roles lista ordenada de roles válidos.
func Roles() []string {
	return []string{RoleOwner, RoleManager, RoleVeterinarian, RoleWorker, RoleAccountant}
}
