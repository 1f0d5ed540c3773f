package rbac

// SuperRoleID is the distinguished role that bypasses permission checks.
const SuperRoleID int64 = 1

// WildcardPermission grants every permission. It is granted directly by the
// super role, never computed by enumerating menus.
const WildcardPermission = "*:*:*"
