package util

import "testing"

func TestInPlaceFilter(t *testing.T) {
	numbers := []int{1, 2, 3, 4, 5, 6}

	InPlaceFilter(&numbers, func(n int) bool { return n%2 == 0 })

	if len(numbers) != 3 {
		t.Fatalf("len = %d, want 3", len(numbers))
	}
	for i, want := range []int{2, 4, 6} {
		if numbers[i] != want {
			t.Errorf("numbers[%d] = %d, want %d", i, numbers[i], want)
		}
	}
}

func TestInPlaceFilterKeepsNothing(t *testing.T) {
	values := []string{"a", "b"}

	InPlaceFilter(&values, func(string) bool { return false })

	if len(values) != 0 {
		t.Errorf("len = %d, want 0", len(values))
	}
}
