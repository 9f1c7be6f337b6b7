package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ContactStatus
		ok       bool
	}{
		{ContactStatusNew, ContactStatusRead, true},
		{ContactStatusNew, ContactStatusReplied, true},
		{ContactStatusRead, ContactStatusReplied, true},
		{ContactStatusRead, ContactStatusNew, false},
		{ContactStatusReplied, ContactStatusNew, false},
		{ContactStatusReplied, ContactStatusRead, false},
		{ContactStatusReplied, ContactStatusReplied, false},
		{ContactStatusNew, ContactStatusNew, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestReviewStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ReviewStatus
		ok       bool
	}{
		{ReviewStatusPending, ReviewStatusApproved, true},
		{ReviewStatusPending, ReviewStatusRejected, true},
		{ReviewStatusPending, ReviewStatusPending, false},
		{ReviewStatusApproved, ReviewStatusRejected, false},
		{ReviewStatusApproved, ReviewStatusPending, false},
		{ReviewStatusRejected, ReviewStatusApproved, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransition(c.to), "%s -> %s", c.from, c.to)
	}
}
