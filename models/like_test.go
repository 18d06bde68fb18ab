package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeState_ToggleIsItsOwnInverse(t *testing.T) {
	states := []LikeState{
		{Liked: false, Count: 0},
		{Liked: false, Count: 7},
		{Liked: true, Count: 1},
		{Liked: true, Count: 42},
	}

	for _, s := range states {
		assert.Equal(t, s, s.Toggle().Toggle())
	}
}

func TestLikeState_Toggle(t *testing.T) {
	s := LikeState{Liked: false, Count: 3}

	liked := s.Toggle()
	assert.True(t, liked.Liked)
	assert.Equal(t, int64(4), liked.Count)

	unliked := liked.Toggle()
	assert.False(t, unliked.Liked)
	assert.Equal(t, int64(3), unliked.Count)
}

func TestLikeState_ToggleNeverNegative(t *testing.T) {
	s := LikeState{Liked: true, Count: 0}
	assert.Equal(t, int64(0), s.Toggle().Count)
}

func TestLikeState_ReconcileServerWins(t *testing.T) {
	optimistic := LikeState{Liked: true, Count: 5}
	server := LikeState{Liked: true, Count: 9}

	assert.Equal(t, server, optimistic.Reconcile(server))
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Taro", User{Name: "Taro", Email: "taro@example.com"}.DisplayName())
	assert.Equal(t, "taro@example.com", User{Email: "taro@example.com"}.DisplayName())
}
