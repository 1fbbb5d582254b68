package icrc7

import (
	"encoding/json"
	"testing"
)

func TestTokenIDDecimalText(t *testing.T) {
	id, err := ParseTokenID("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back TokenID
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != id {
		t.Fatalf("round trip = %s, want %s", back, id)
	}

	if _, err := ParseTokenID("0x10"); err == nil {
		t.Fatal("hex input must be rejected")
	}
}

func TestTokenIDSetMarshalsSorted(t *testing.T) {
	s := NewTokenIDSet(NewTokenID(30), NewTokenID(2), NewTokenID(100))

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `["2","30","100"]` {
		t.Fatalf("json = %s", got)
	}

	var back TokenIDSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 3 || !back.Contains(NewTokenID(30)) {
		t.Fatalf("round trip = %v", back)
	}
}

func TestAccountCanonicalEquality(t *testing.T) {
	owner := testPrincipal(t, 2)
	bare := Account{Owner: owner}
	explicit := Account{Owner: owner, Subaccount: &DefaultSubaccount}

	if !bare.Equal(explicit) {
		t.Fatal("absent and zero subaccounts must compare equal")
	}
	if bare.Equal(Account{Owner: owner, Subaccount: subaccount(1)}) {
		t.Fatal("distinct subaccounts must not compare equal")
	}

	canon := bare.Canonical()
	if canon.Subaccount == nil || *canon.Subaccount != DefaultSubaccount {
		t.Fatalf("canonical = %+v", canon)
	}
}
