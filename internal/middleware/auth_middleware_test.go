package middleware

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB, *model.User, *model.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.User{}))

	admin := &model.User{Username: "owner", Role: model.RoleAdmin, IsActive: true}
	require.NoError(t, admin.SetPassword("supersecret"))
	require.NoError(t, db.Create(admin).Error)

	staff := &model.User{Username: "clerk", Role: model.RoleStaff, IsActive: true}
	require.NoError(t, staff.SetPassword("supersecret"))
	require.NoError(t, db.Create(staff).Error)

	userRepo := repository.NewUserRepo(db)

	app := fiber.New()
	protected := app.Group("", RequireAuth(userRepo))
	protected.Get("/open", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": c.Locals("username")})
	})
	protected.Post("/admin-only", RequireAction(model.ActionCaseCreateAuth), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app, db, admin, staff
}

func bearer(t *testing.T, u *model.User) string {
	t.Helper()
	token, err := jwt.GenerateToken(u.ID, u.Username, string(u.Role))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequireAuthRejectsMissingOrBadToken(t *testing.T) {
	app, _, _, _ := newAuthApp(t)

	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Basic abc")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	app, _, admin, _ := newAuthApp(t)

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", bearer(t, admin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequireActionEnforcesRoles(t *testing.T) {
	app, _, admin, staff := newAuthApp(t)

	req := httptest.NewRequest("POST", "/admin-only", nil)
	req.Header.Set("Authorization", bearer(t, staff))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("POST", "/admin-only", nil)
	req.Header.Set("Authorization", bearer(t, admin))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestRequireAuthRejectsDisabledUser(t *testing.T) {
	app, db, _, staff := newAuthApp(t)

	// A valid token stops working the moment the account is disabled.
	token := bearer(t, staff)
	require.NoError(t, db.Model(staff).Update("is_active", false).Error)

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
