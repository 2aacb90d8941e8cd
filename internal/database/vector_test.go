package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_ValueRoundTrip(t *testing.T) {
	v := NewVector([]float64{1, -0.5, 2.25})

	val, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, "[1,-0.5,2.25]", val)

	var scanned Vector
	require.NoError(t, scanned.Scan(val))
	assert.Equal(t, []float64{1, -0.5, 2.25}, scanned.Floats())
}

func TestVector_NullRoundTrip(t *testing.T) {
	var v Vector
	require.True(t, v.IsZero())

	val, err := v.Value()
	require.NoError(t, err)
	assert.Nil(t, val, "uninitialized vector must serialize to NULL")

	var scanned Vector
	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())
	assert.Nil(t, scanned.Floats())
}

func TestVector_MigratesAsColumn(t *testing.T) {
	type embedded struct {
		ID        string `gorm:"primaryKey"`
		Embedding Vector
	}

	db := newFileDB(t)
	session := db.Session(context.Background())
	require.NoError(t, session.AutoMigrate(&embedded{}),
		"schema parsing must not depend on the zero Vector's NULL Value()")

	require.NoError(t, session.Create(&embedded{ID: "a"}).Error)
	require.NoError(t, session.Create(&embedded{ID: "b", Embedding: NewVector([]float64{1, 2})}).Error)

	var missing []embedded
	require.NoError(t, session.Where("embedding IS NULL").Find(&missing).Error)
	require.Len(t, missing, 1)
	assert.Equal(t, "a", missing[0].ID)

	var loaded embedded
	require.NoError(t, session.First(&loaded, "id = ?", "b").Error)
	assert.Equal(t, []float64{1, 2}, loaded.Embedding.Floats())
}

func TestVector_ScanBytes(t *testing.T) {
	var v Vector
	require.NoError(t, v.Scan([]byte("[0.25, 0.75]")))
	assert.Equal(t, []float64{0.25, 0.75}, v.Floats())
}

func TestVector_ScanEmptyLiteral(t *testing.T) {
	var v Vector
	require.NoError(t, v.Scan("[]"))
	assert.False(t, v.IsZero())
	assert.Equal(t, 0, v.Dimension())
}

func TestVector_ScanRejectsUnknownType(t *testing.T) {
	var v Vector
	require.Error(t, v.Scan(42))
}

func TestVector_ScanRejectsMalformed(t *testing.T) {
	var v Vector
	require.Error(t, v.Scan("[1.0,abc]"))
}

func TestVector_DefensiveCopies(t *testing.T) {
	src := []float64{1, 2}
	v := NewVector(src)
	src[0] = 99
	assert.Equal(t, []float64{1, 2}, v.Floats())

	out := v.Floats()
	out[1] = 42
	assert.Equal(t, []float64{1, 2}, v.Floats())
}
