package cnf

import (
	"fmt"
	"sort"
)

// Assignment is a partial mapping from variable to Boolean.
type Assignment map[int]bool

// ExtendAssignments extends every assignment in as with var bound to both
// false and true, doubling the list (or producing the two singletons when
// as is empty). The output preserves as's order: each input is replaced by
// its false-extension immediately followed by its true-extension.
func ExtendAssignments(as []Assignment, v int) []Assignment {
	if len(as) == 0 {
		return []Assignment{
			{v: false},
			{v: true},
		}
	}
	out := make([]Assignment, 0, 2*len(as))
	for _, a := range as {
		withFalse := make(Assignment, len(a)+1)
		withTrue := make(Assignment, len(a)+1)
		for k, val := range a {
			withFalse[k] = val
			withTrue[k] = val
		}
		withFalse[v] = false
		withTrue[v] = true
		out = append(out, withFalse, withTrue)
	}
	return out
}

// String prints signed literals in increasing variable order: a variable
// bound to true prints as "+v", bound to false as "-v".
func (a Assignment) String() string {
	vars := make([]int, 0, len(a))
	for v := range a {
		vars = append(vars, v)
	}
	sort.Ints(vars)

	s := ""
	for i, v := range vars {
		if i > 0 {
			s += " "
		}
		if a[v] {
			s += fmt.Sprintf("+%d", v)
		} else {
			s += fmt.Sprintf("-%d", v)
		}
	}
	return s
}

// Domain returns the variables this assignment binds, in increasing order.
func (a Assignment) Domain() []int {
	vars := make([]int, 0, len(a))
	for v := range a {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}
