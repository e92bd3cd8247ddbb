package contacts_test

import (
	"testing"

	"github.com/adityaksh/sakha/internal/contacts"
)

var testEntries = []contacts.Contact{
	{Name: "Mummy", Number: "+911111111111"},
	{Name: "Ravi Kumar", Number: "+912222222222"},
	{Name: "Sneha", Number: "+913333333333"},
}

func TestResolve_Exact(t *testing.T) {
	t.Parallel()
	d := contacts.NewDirectory(testEntries)

	got, ok := d.Resolve("mummy")
	if !ok {
		t.Fatal("Resolve returned no match for exact name")
	}
	if got.Number != "+911111111111" {
		t.Errorf("Number = %q, want Mummy's number", got.Number)
	}
}

func TestResolve_Substring(t *testing.T) {
	t.Parallel()
	d := contacts.NewDirectory(testEntries)

	got, ok := d.Resolve("ravi")
	if !ok {
		t.Fatal("Resolve returned no match for partial name")
	}
	if got.Name != "Ravi Kumar" {
		t.Errorf("Name = %q, want Ravi Kumar", got.Name)
	}
}

func TestResolve_Phonetic(t *testing.T) {
	t.Parallel()
	d := contacts.NewDirectory(testEntries)

	// A plausible recognition of "Sneha".
	got, ok := d.Resolve("snaha")
	if !ok {
		t.Fatal("Resolve returned no phonetic match")
	}
	if got.Name != "Sneha" {
		t.Errorf("Name = %q, want Sneha", got.Name)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	t.Parallel()
	d := contacts.NewDirectory(testEntries)

	if got, ok := d.Resolve("zzqx"); ok {
		t.Errorf("Resolve matched %q, want no match", got.Name)
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	t.Parallel()
	d := contacts.NewDirectory(testEntries)

	if _, ok := d.Resolve("   "); ok {
		t.Error("Resolve matched blank input, want no match")
	}
}

func TestNames_PreservesOrder(t *testing.T) {
	t.Parallel()
	d := contacts.NewDirectory(testEntries)

	names := d.Names()
	want := []string{"Mummy", "Ravi Kumar", "Sneha"}
	if len(names) != len(want) {
		t.Fatalf("len(Names) = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
