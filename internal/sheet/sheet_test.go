package sheet

import "testing"

func TestSetDoesNotMutateOriginal(t *testing.T) {
	orig := Row{FieldClientID: "C1", FieldGroupTag: "alpha"}
	changed := Set(orig, FieldGroupTag, "beta")

	if orig[FieldGroupTag] != "alpha" {
		t.Errorf("Set mutated the original row: %v", orig)
	}
	if changed[FieldGroupTag] != "beta" {
		t.Errorf("Set did not apply the new value: %v", changed)
	}
	if changed[FieldClientID] != "C1" {
		t.Errorf("Set dropped an unrelated field: %v", changed)
	}
}

func TestIntField(t *testing.T) {
	row := Row{"a": "3", "b": " 7 ", "c": "x", "d": ""}

	if n, ok := IntField(row, "a"); !ok || n != 3 {
		t.Errorf("IntField(a) = %d, %v", n, ok)
	}
	if n, ok := IntField(row, "b"); !ok || n != 7 {
		t.Errorf("IntField(b) = %d, %v (whitespace should be tolerated)", n, ok)
	}
	if _, ok := IntField(row, "c"); ok {
		t.Error("IntField(c) reported success for a non-numeric value")
	}
	if _, ok := IntField(row, "d"); ok {
		t.Error("IntField(d) reported success for an empty value")
	}
	if _, ok := IntField(row, "missing"); ok {
		t.Error("IntField reported success for an absent field")
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList(""); got != nil {
		t.Errorf("SplitList(\"\") = %v, want nil", got)
	}
	got := SplitList("T001, T002 ,T003")
	want := []string{"T001", "T002", "T003"}
	if len(got) != len(want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}

	// Stray commas keep their empty tokens so validators can flag them.
	if got := SplitList("a,,b"); len(got) != 3 || got[1] != "" {
		t.Errorf("SplitList(\"a,,b\") = %v, want empty middle token", got)
	}
}

func TestDetectType(t *testing.T) {
	cases := map[string]Type{
		"clients.csv":     TypeClients,
		"my_Clients.xlsx": TypeClients,
		"workers.csv":     TypeWorkers,
		"tasks.csv":       TypeTasks,
		"task_list.csv":   TypeTasks,
		"inventory.csv":   TypeUnknown,
	}
	for name, want := range cases {
		if got := DetectType(name); got != want {
			t.Errorf("DetectType(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTaskIDPattern(t *testing.T) {
	for _, ok := range []string{"T1", "T001", "T12345"} {
		if !TaskIDPattern.MatchString(ok) {
			t.Errorf("TaskIDPattern rejected %q", ok)
		}
	}
	for _, bad := range []string{"", "T", "001", "T01a", "task1", "t001"} {
		if TaskIDPattern.MatchString(bad) {
			t.Errorf("TaskIDPattern accepted %q", bad)
		}
	}
}
