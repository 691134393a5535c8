package api

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"greencampus/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var boardRowCols = []string{
	"id", "slug", "name", "description", "created_at", "updated_at", "deleted_at",
}

func setupBoardMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func TestBoardHandler_GetBySlug_NotFound(t *testing.T) {
	mock, cleanup := setupBoardMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `boards`").WithArgs("nope").
		WillReturnError(gorm.ErrRecordNotFound)

	router := gin.New()
	router.GET("/api/boards/:slug", NewBoardHandler().GetBySlug)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/boards/nope", nil))

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardHandler_Create_DuplicateSlug(t *testing.T) {
	mock, cleanup := setupBoardMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `boards`").WithArgs("notice").
		WillReturnRows(sqlmock.NewRows(boardRowCols).
			AddRow(1, "notice", "Notices", "", time.Now(), time.Now(), nil))

	router := gin.New()
	router.POST("/api/boards", NewBoardHandler().Create)
	body := `{"slug":"notice","name":"Another notices"}`
	req := httptest.NewRequest("POST", "/api/boards", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "slug")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardHandler_Create_SlugCheckStorageError(t *testing.T) {
	mock, cleanup := setupBoardMockDB(t)
	defer cleanup()

	// the slug lookup fails outright: no board may be written
	mock.ExpectQuery("SELECT .* FROM `boards`").WithArgs("notice").
		WillReturnError(errors.New("driver: bad connection"))

	router := gin.New()
	router.POST("/api/boards", NewBoardHandler().Create)
	body := `{"slug":"notice","name":"Notices"}`
	req := httptest.NewRequest("POST", "/api/boards", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 500, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardHandler_Delete_WithPosts(t *testing.T) {
	mock, cleanup := setupBoardMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `boards`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(boardRowCols).
			AddRow(1, "notice", "Notices", "", time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT count.* FROM `posts`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	router := gin.New()
	router.DELETE("/api/boards/:id", NewBoardHandler().Delete)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/boards/1", nil))

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageHandler_Delete_ReferencedByMenu(t *testing.T) {
	mock, cleanup := setupBoardMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "content", "created_at", "updated_at", "deleted_at"}).
			AddRow(3, "about", "About", "", time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT count.* FROM `menus`").WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	router := gin.New()
	router.DELETE("/api/pages/:id", NewPageHandler().Delete)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/pages/3", nil))

	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "referenced")
	require.NoError(t, mock.ExpectationsWereMet())
}
