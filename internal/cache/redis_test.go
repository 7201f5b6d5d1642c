package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-subscription/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	db := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = db.Close() })

	return &Cache{Db: db}
}

func TestCache_SetAndGet(t *testing.T) {
	c := setupTestCache(t)

	courses := []*models.Course{
		{ID: "f2c1a9d7-3e5b-4a8c-b6d0-1e9f7a4c2b58", Title: "Node.js Masterclass", Price: 99.99},
		{ID: "a7e3c5f1-9b2d-4e6a-8c0b-3f5d7a9e1c24", Title: "Web Development Basics", Price: 0},
	}

	require.NoError(t, c.Set("courses:all", courses, time.Hour))

	var got []*models.Course
	found, err := c.Get("courses:all", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, courses, got)
}

func TestCache_GetNotFound(t *testing.T) {
	c := setupTestCache(t)

	var got []*models.Course
	found, err := c.Get("courses:all", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestCache_Invalidate(t *testing.T) {
	c := setupTestCache(t)

	course := &models.Course{ID: "f2c1a9d7-3e5b-4a8c-b6d0-1e9f7a4c2b58", Title: "Node.js Masterclass"}
	require.NoError(t, c.Set("course:"+course.ID, course, time.Hour))
	require.NoError(t, c.Invalidate("course:"+course.ID))

	var got models.Course
	found, err := c.Get("course:"+course.ID, &got)
	require.NoError(t, err)
	assert.False(t, found)
}
