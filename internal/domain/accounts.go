package domain

// NamedAccount is a role resolved to an address on the active network.
type NamedAccount struct {
	Role    string
	Address string
}

// NamedAccounts keeps resolved roles in the order they were requested.
type NamedAccounts []NamedAccount

// Get returns the address for role.
func (n NamedAccounts) Get(role string) (string, bool) {
	for _, acc := range n {
		if acc.Role == role {
			return acc.Address, true
		}
	}
	return "", false
}

// MustGet returns the address for role or panics. Only for roles that were
// part of the validated request.
func (n NamedAccounts) MustGet(role string) string {
	addr, ok := n.Get(role)
	if !ok {
		panic("named account not requested: " + role)
	}
	return addr
}

// Roles returns the role names in request order.
func (n NamedAccounts) Roles() []string {
	roles := make([]string, len(n))
	for i, acc := range n {
		roles[i] = acc.Role
	}
	return roles
}

// Map returns the accounts as a role -> address map.
func (n NamedAccounts) Map() map[string]string {
	m := make(map[string]string, len(n))
	for _, acc := range n {
		m[acc.Role] = acc.Address
	}
	return m
}
