package auth

// NavItem is a header link.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// Navigation describes the header affordances of a session.
type Navigation struct {
	Access           string    `json:"access"`
	Items            []NavItem `json:"items"`
	ShowLogin        bool      `json:"show_login"`
	ShowRegister     bool      `json:"show_register"`
	ShowBecomeSeller bool      `json:"show_become_seller"`
	ShowLogout       bool      `json:"show_logout"`
}

// NavigationFor builds the header for p.
func NavigationFor(p Policy) Navigation {
	nav := Navigation{
		Access: p.Access().String(),
		Items:  []NavItem{{Path: RootPath, Label: "Catalog"}},
	}
	if p.IsSeller() {
		nav.Items = append(nav.Items, NavItem{Path: SellerPath, Label: "Seller dashboard"})
	}
	if p.IsAdmin() {
		nav.Items = append(nav.Items, NavItem{Path: AdminPath, Label: "Admin panel"})
	}
	if p.IsBuyer() {
		nav.Items = append(nav.Items, NavItem{Path: CartPath, Label: "Cart"})
	}

	if !p.HasToken() {
		nav.ShowLogin = true
		nav.ShowRegister = true
		return nav
	}
	nav.ShowBecomeSeller = p.IsBuyer()
	nav.ShowLogout = true
	return nav
}

// LandingPath is where a session goes right after login.
func LandingPath(p Policy) string {
	switch p.Access() {
	case AccessAdmin:
		return AdminPath
	case AccessSeller:
		return SellerPath
	default:
		return RootPath
	}
}
