package dbutil

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRebindsPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT id FROM pages WHERE user_id=? AND archived=?", []interface{}{"u1", 0})
	require.Equal(t, "SELECT id FROM pages WHERE user_id=$1 AND archived=$2", query)
	require.Equal(t, []interface{}{"u1", 0}, args)
}

func TestFinalizeRewritesMySQLLimit(t *testing.T) {
	query, args := Finalize("SELECT id FROM pages WHERE user_id=? LIMIT ?,?", []interface{}{"u1", 10, 5})
	require.Equal(t, "SELECT id FROM pages WHERE user_id=$1 LIMIT $2 OFFSET $3", query)
	// offset/count swap to match the rewritten clause
	require.Equal(t, []interface{}{"u1", 5, 10}, args)
}

func TestIsConflict(t *testing.T) {
	require.True(t, IsConflict(&pq.Error{Code: "23505"}))
	require.False(t, IsConflict(&pq.Error{Code: "23503"}))
	require.False(t, IsConflict(errors.New("boom")))
	require.False(t, IsConflict(nil))
}
