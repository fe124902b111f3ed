package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
)

func newActivityFixture(t *testing.T) (*ActivityService, string) {
	t.Helper()
	jwt := newTestJWT(t)
	users := newFakeUserRepo()

	u := &entity.User{Email: "dev@example.com", PasswordHash: "x", Role: entity.RoleUser}
	require.NoError(t, users.Create(u))

	token, _, err := jwt.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	require.NoError(t, err)

	return NewActivityService(newFakeActivityRepo(), users, jwt, nil), token
}

func TestLogActivityDerivesPoints(t *testing.T) {
	ctx := context.Background()
	svc, token := newActivityFixture(t)

	cases := []struct {
		activityType string
		points       int
	}{
		{"COMMIT", 10},
		{"PULL_REQUEST", 25},
		{"LEETCODE_HARD", 50},
		{"MANUAL", 0},
	}
	for _, tc := range cases {
		a, err := svc.Log(ctx, token, tc.activityType, "did a thing", "")
		require.NoError(t, err)
		assert.Equal(t, tc.points, a.Points, tc.activityType)
	}
}

func TestLogActivityRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	svc, token := newActivityFixture(t)

	_, err := svc.Log(ctx, token, "YAK_SHAVING", "trimmed the yak", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestLogActivityRequiresDescription(t *testing.T) {
	ctx := context.Background()
	svc, token := newActivityFixture(t)

	_, err := svc.Log(ctx, token, "COMMIT", "", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestLogActivityRejectsInvalidToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityFixture(t)

	_, err := svc.Log(ctx, "bogus", "COMMIT", "did a thing", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListActivitiesNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, token := newActivityFixture(t)

	_, err := svc.Log(ctx, token, "COMMIT", "first", "")
	require.NoError(t, err)
	_, err = svc.Log(ctx, token, "ISSUE", "second", `{"repo":"mydevduck"}`)
	require.NoError(t, err)

	out, err := svc.List(ctx, token)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "second", out[0].Description)
	assert.Equal(t, `{"repo":"mydevduck"}`, out[0].Metadata)
	assert.Equal(t, "first", out[1].Description)
}
