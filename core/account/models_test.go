package account

import "testing"

func TestAccount_SetCheckPassword(t *testing.T) {
	var acct Account
	if err := acct.CheckPassword("lol"); err == nil {
		t.Error("CheckPassword() expected an error with no hash set")
	}

	if err := acct.SetPassword("s3cr3t!pwd"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if len(acct.PasswordHash) == 0 {
		t.Fatal("SetPassword() did not store a hash")
	}
	if err := acct.CheckPassword("s3cr3t!pwd"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err := acct.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword() expected an error for a wrong password")
	}
}

func TestNewAccount_Validate(t *testing.T) {
	valid := NewAccount{Email: "awe@test.cd", Password: "password123", Role: RoleTeacher}

	tests := []struct {
		name    string
		mutate  func(na *NewAccount)
		wantErr bool
	}{
		{name: "valid", mutate: func(na *NewAccount) {}},
		{name: "email is lowercased", mutate: func(na *NewAccount) { na.Email = "AWE@Test.CD" }},
		{name: "missing email", mutate: func(na *NewAccount) { na.Email = "" }, wantErr: true},
		{name: "invalid email", mutate: func(na *NewAccount) { na.Email = "lol" }, wantErr: true},
		{name: "missing password", mutate: func(na *NewAccount) { na.Password = "" }, wantErr: true},
		{name: "short password", mutate: func(na *NewAccount) { na.Password = "shorty1" }, wantErr: true},
		{name: "password too similar to email", mutate: func(na *NewAccount) { na.Password = "awe@test.cdx" }, wantErr: true},
		{name: "missing role", mutate: func(na *NewAccount) { na.Role = "" }, wantErr: true},
		{name: "unknown role", mutate: func(na *NewAccount) { na.Role = "principal" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := valid
			tt.mutate(&na)
			if err := na.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}

	t.Run("email cleaning", func(t *testing.T) {
		na := valid
		na.Email = "  AWE@Test.CD "
		if err := na.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if na.Email != "awe@test.cd" {
			t.Errorf("na.Email = %q, want %q", na.Email, "awe@test.cd")
		}
	})
}

func TestKnownRole(t *testing.T) {
	for _, role := range AllRoles {
		if !KnownRole(role) {
			t.Errorf("KnownRole(%q) = false, want true", role)
		}
	}
	if KnownRole("principal") {
		t.Error(`KnownRole("principal") = true, want false`)
	}
	if KnownRole("") {
		t.Error(`KnownRole("") = true, want false`)
	}
}
