package domain

import (
	"testing"
)

func TestValidatorHookKinds(t *testing.T) {
	v := NewValidator()

	t.Run("per-test hooks are allowed", func(t *testing.T) {
		for _, kind := range []string{"beforeEach", "afterEach"} {
			if err := v.CheckHookKind(kind); err != nil {
				t.Errorf("CheckHookKind(%q) = %v, want nil", kind, err)
			}
		}
	})

	t.Run("suite-wide hooks are forbidden with a fixed message", func(t *testing.T) {
		const want = `"before" and "after" hooks are forbidden, use "beforeEach" and "afterEach" hooks instead`

		for _, kind := range []string{"beforeAll", "afterAll", "before", "after"} {
			err := v.CheckHookKind(kind)
			if err == nil {
				t.Fatalf("CheckHookKind(%q) = nil, want error", kind)
			}

			if err.Error() != want {
				t.Errorf("CheckHookKind(%q) message = %q, want %q", kind, err.Error(), want)
			}
		}
	})
}

func TestValidatorDuplicateTitles(t *testing.T) {
	t.Run("same title in the same file", func(t *testing.T) {
		v := NewValidator()

		if err := v.CheckTest("some test", "some file"); err != nil {
			t.Fatalf("first insertion failed: %v", err)
		}

		err := v.CheckTest("some test", "some file")
		if err == nil {
			t.Fatal("expected duplicate-title error")
		}

		want := "Tests with the same title 'some test' in file 'some file' can't be used"
		if err.Error() != want {
			t.Errorf("message = %q, want %q", err.Error(), want)
		}
	})

	t.Run("same title across files", func(t *testing.T) {
		v := NewValidator()

		if err := v.CheckTest("some test", "first file"); err != nil {
			t.Fatalf("first insertion failed: %v", err)
		}

		err := v.CheckTest("some test", "second file")
		if err == nil {
			t.Fatal("expected duplicate-title error")
		}

		want := "Tests with the same title 'some test' in files 'first file' and 'second file' can't be used"
		if err.Error() != want {
			t.Errorf("message = %q, want %q", err.Error(), want)
		}
	})

	t.Run("distinct titles pass", func(t *testing.T) {
		v := NewValidator()

		for _, title := range []string{"one", "two", "three"} {
			if err := v.CheckTest(title, "f.yaml"); err != nil {
				t.Errorf("CheckTest(%q) = %v, want nil", title, err)
			}
		}
	})
}
