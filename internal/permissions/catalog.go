package permissions

// Resources a permission can target.
const (
	ResourceUsers       = "Users"
	ResourceRoles       = "Roles"
	ResourcePermissions = "Permissions"
)

// Actions a permission can grant. "own" limits the action to records the
// actor created; "any" covers every record.
const (
	ActionCreateOwn = "create own"
	ActionReadOwn   = "read own"
	ActionUpdateOwn = "update own"
	ActionDeleteOwn = "delete own"
	ActionCreateAny = "create any"
	ActionReadAny   = "read any"
	ActionUpdateAny = "update any"
	ActionDeleteAny = "delete any"
)

// Resources lists the selectable resources.
func Resources() []string {
	return []string{
		ResourceUsers,
		ResourceRoles,
		ResourcePermissions,
	}
}

// Actions lists the selectable actions.
func Actions() []string {
	return []string{
		ActionCreateOwn,
		ActionReadOwn,
		ActionUpdateOwn,
		ActionDeleteOwn,
		ActionCreateAny,
		ActionReadAny,
		ActionUpdateAny,
		ActionDeleteAny,
	}
}
