package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hudsonrx/claimsight/internal/model"
)

func TestLoadFromFile_Valid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte(
		"claims_file: claims.csv\nstart_date: \"2025-02-01\"\nshare_rate: 0.25\nsmtp:\n  host: smtp.test\n"), 0644)

	c := Default()
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.ClaimsFile != "claims.csv" {
		t.Errorf("ClaimsFile = %q", c.ClaimsFile)
	}
	if c.StartDate != "2025-02-01" || c.ShareRate != 0.25 {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.SMTP.Host != "smtp.test" || c.SMTP.Port != 587 {
		t.Errorf("smtp merge: %+v", c.SMTP)
	}
	// Untouched fields keep their defaults.
	if c.EstPaidPerInfusion != DefaultEstPaidPerInfusion {
		t.Errorf("EstPaidPerInfusion = %v", c.EstPaidPerInfusion)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	c := Default()
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "boss@hudsonrx.com, owner@hudsonrx.com")
	t.Setenv("BIZDEV_USERS", "amy@hudsonrx.com:Amy Harper:Harper, Amy")
	t.Setenv("APP_PASSWORD", "hunter2")
	t.Setenv("DEBUG_SKIP_PASSWORD", "true")

	c := Default()
	c.LoadFromEnv()
	if len(c.AdminEmails) != 2 || c.AdminEmails[1] != "owner@hudsonrx.com" {
		t.Errorf("AdminEmails = %v", c.AdminEmails)
	}
	if c.AppPassword != "hunter2" || !c.SkipPassword {
		t.Errorf("secrets not loaded: %+v", c)
	}
}

func TestUsers(t *testing.T) {
	c := Default()
	c.AdminEmails = []string{"boss@hudsonrx.com"}
	c.BizDevUsers = "amy@hudsonrx.com:Amy Harper:Harper, Amy|sam@hudsonrx.com:Sam Lee:Lee, Sam"
	c.ViewerUsers = "doc@clinic.com:Front Desk:Smith, John;Jones, Mary"

	users, err := c.Users()
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("users = %d", len(users))
	}
	if users[0].Role != model.RoleAdmin {
		t.Errorf("admin = %+v", users[0])
	}
	amy := users[1]
	if amy.Role != model.RoleBizDev || amy.RepName != "Harper, Amy" || amy.Name != "Amy Harper" {
		t.Errorf("bizdev = %+v", amy)
	}
	viewer := users[3]
	if viewer.Role != model.RoleViewer || len(viewer.DoctorList) != 2 || viewer.DoctorList[1] != "Jones, Mary" {
		t.Errorf("viewer = %+v", viewer)
	}
}

func TestUsersMalformedEntry(t *testing.T) {
	c := Default()
	c.BizDevUsers = "amy@hudsonrx.com:Amy Harper"
	if _, err := c.Users(); err == nil {
		t.Fatal("expected error for entry missing the rep field")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	claims := filepath.Join(dir, "claims.csv")
	os.WriteFile(claims, []byte("x"), 0644)

	c := Default()
	if err := c.Validate(); err == nil {
		t.Error("missing claims file must fail validation")
	}

	c.ClaimsFile = claims
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	c.ShareRate = 1.5
	if err := c.Validate(); err == nil {
		t.Error("share_rate > 1 must fail validation")
	}

	c.ShareRate = DefaultShareRate
	c.StartDate = "not-a-date"
	if err := c.Validate(); err == nil {
		t.Error("bad start_date must fail validation")
	}
}

func TestValidateWithRoster(t *testing.T) {
	dir := t.TempDir()
	claims := filepath.Join(dir, "claims.csv")
	os.WriteFile(claims, []byte("x"), 0644)

	c := Default()
	c.ClaimsFile = claims
	if err := c.ValidateWithRoster(); err == nil {
		t.Fatal("missing roster must fail")
	}

	roster := filepath.Join(dir, "roster.csv")
	os.WriteFile(roster, []byte("x"), 0644)
	c.RosterFile = roster
	if err := c.ValidateWithRoster(); err != nil {
		t.Fatalf("ValidateWithRoster: %v", err)
	}
}
