package models

import "testing"

// TestUserIsAdmin verifies that IsAdmin returns true only for the admin role.
func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "admin role", role: RoleAdmin, want: true},
		{name: "author role", role: RoleAuthor, want: false},
		{name: "reader role", role: RoleReader, want: false},
		{name: "empty role", role: Role(""), want: false},
		{name: "unknown role", role: Role("superadmin"), want: false},
		{name: "uppercase ADMIN", role: Role("ADMIN"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			got := u.IsAdmin()
			if got != tt.want {
				t.Errorf("User{Role: %q}.IsAdmin() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

// TestUserCanAuthor verifies that only authors and admins may create posts.
func TestUserCanAuthor(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "author", role: RoleAuthor, want: true},
		{name: "admin", role: RoleAdmin, want: true},
		{name: "reader", role: RoleReader, want: false},
		{name: "empty", role: Role(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.CanAuthor(); got != tt.want {
				t.Errorf("User{Role: %q}.CanAuthor() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

// TestValidRole checks the role whitelist.
func TestValidRole(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "reader", role: RoleReader, want: true},
		{name: "author", role: RoleAuthor, want: true},
		{name: "admin", role: RoleAdmin, want: true},
		{name: "empty", role: Role(""), want: false},
		{name: "unknown", role: Role("editor"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRole(tt.role); got != tt.want {
				t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

// TestImageEmpty verifies empty detection for image references.
func TestImageEmpty(t *testing.T) {
	tests := []struct {
		name string
		img  Image
		want bool
	}{
		{name: "zero value", img: Image{}, want: true},
		{name: "url only", img: Image{URL: "https://cdn.example/a.jpg"}, want: false},
		{name: "key only", img: Image{Key: "uploads/a.jpg"}, want: false},
		{name: "both set", img: Image{URL: "https://cdn.example/a.jpg", Key: "uploads/a.jpg"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.img.Empty(); got != tt.want {
				t.Errorf("Image%+v.Empty() = %v, want %v", tt.img, got, tt.want)
			}
		})
	}
}
