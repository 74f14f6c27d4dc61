package keva

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T) *Record {
	t.Helper()
	rec, err := testBucket("users").NewRecord("alice")
	require.NoError(t, err)
	return rec
}

func TestAddIndexSuffixRule(t *testing.T) {
	tests := []struct {
		field   string
		wantErr bool
	}{
		{"email_bin", false},
		{"age_int", false},
		{"email", true},
		{"email_str", true},
		{"_bin", false},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			rec := newTestRecord(t)
			err := rec.AddIndex(tt.field, "x")
			if tt.wantErr {
				var suffix *ErrInvalidIndexSuffix
				require.True(t, errors.As(err, &suffix))
				assert.Equal(t, tt.field, suffix.Field)
			} else {
				require.NoError(t, err)
				assert.True(t, rec.HasIndex(tt.field, "x"))
			}
		})
	}
}

func TestAddIndexIdempotent(t *testing.T) {
	rec := newTestRecord(t)

	require.NoError(t, rec.AddIndex("email_bin", "a@example.com"))
	require.NoError(t, rec.AddIndex("email_bin", "a@example.com"))

	assert.Len(t, rec.Indexes(), 1)
}

func TestAddIntIndex(t *testing.T) {
	rec := newTestRecord(t)

	require.NoError(t, rec.AddIntIndex("age_int", 42))
	assert.True(t, rec.HasIndex("age_int", "42"))

	err := rec.AddIntIndex("age_bin", 42)
	var suffix *ErrInvalidIndexSuffix
	assert.True(t, errors.As(err, &suffix))
}

func TestRemoveIndexesAll(t *testing.T) {
	rec := newTestRecord(t)
	require.NoError(t, rec.AddIndex("email_bin", "a"))
	require.NoError(t, rec.AddIntIndex("age_int", 1))

	require.NoError(t, rec.RemoveIndexes("", ""))
	assert.Empty(t, rec.Indexes())

	// Clearing an already empty set succeeds.
	require.NoError(t, rec.RemoveIndexes("", ""))
}

func TestRemoveIndexesByField(t *testing.T) {
	rec := newTestRecord(t)
	require.NoError(t, rec.AddIndex("email_bin", "a"))
	require.NoError(t, rec.AddIndex("email_bin", "b"))
	require.NoError(t, rec.AddIntIndex("age_int", 1))

	require.NoError(t, rec.RemoveIndexes("email_bin", ""))

	assert.Equal(t, []IndexEntry{{Field: "age_int", Value: "1"}}, rec.Indexes())
}

func TestRemoveIndexesExactPair(t *testing.T) {
	rec := newTestRecord(t)
	require.NoError(t, rec.AddIndex("email_bin", "a"))

	require.NoError(t, rec.RemoveIndexes("email_bin", "a"))
	assert.Empty(t, rec.Indexes())

	assert.ErrorIs(t, rec.RemoveIndexes("email_bin", "a"), ErrIndexNotFound)
}

func TestRemoveIndexesValueWithoutField(t *testing.T) {
	rec := newTestRecord(t)
	require.NoError(t, rec.AddIndex("email_bin", "a"))

	assert.ErrorIs(t, rec.RemoveIndexes("", "a"), ErrAmbiguousIndexRemoval)
	assert.Len(t, rec.Indexes(), 1)
}

func TestAddLinkOrderAndDuplicates(t *testing.T) {
	rec := newTestRecord(t)

	first := Link{Bucket: "users", Key: "bob", Tag: "friend"}
	second := Link{Bucket: "groups", Key: "admins", Tag: ""}

	rec.AddLink(first)
	rec.AddLink(second)
	rec.AddLink(first)

	assert.Equal(t, []Link{first, second, first}, rec.Links())
}

func TestAddLinkTo(t *testing.T) {
	rec := newTestRecord(t)

	target, err := testBucket("groups").NewRecord("admins")
	require.NoError(t, err)

	require.NoError(t, rec.AddLinkTo(target, "member-of"))
	assert.Equal(t, []Link{{Bucket: "groups", Key: "admins", Tag: "member-of"}}, rec.Links())

	keyless := testBucket("groups").NewRecordWithoutKey()
	assert.ErrorIs(t, rec.AddLinkTo(keyless, ""), ErrNoKey)
}
