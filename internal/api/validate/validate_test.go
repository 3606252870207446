package validate

import "testing"

func TestCollect(t *testing.T) {
	if errs := Collect(Required("email", "a@x.com"), Required("password", "pw")); errs != nil {
		t.Errorf("valid input produced errors: %v", errs)
	}

	errs := Collect(
		Required("full_name", "  "),
		Required("email", ""),
		Required("password", "pw"),
	)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}
	if errs[0].Field != "full_name" || errs[1].Field != "email" {
		t.Errorf("wrong fields: %v", errs)
	}
	if errs.Error() != "full_name: required; email: required" {
		t.Errorf("message: %q", errs.Error())
	}
}

func TestEmail(t *testing.T) {
	if e := Email("email", "ana@x.com"); e != nil {
		t.Errorf("valid email rejected: %v", e)
	}
	if e := Email("email", "not-an-email"); e == nil {
		t.Error("invalid email accepted")
	}
}
