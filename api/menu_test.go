package api

import (
	"bytes"
	"encoding/json"
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

var menuRowCols = []string{
	"id", "parent_id", "name", "url", "kind", "page_id", "board_id",
	"sort_order", "is_active", "created_at", "updated_at", "deleted_at",
}

func setupMenuMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
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

func TestMenuHandler_Create_ParentNotExists(t *testing.T) {
	mock, cleanup := setupMenuMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs(999).
		WillReturnError(gorm.ErrRecordNotFound)

	router := gin.New()
	router.POST("/api/menus", NewMenuHandler().Create)
	body := `{"parent_id":999,"name":"Sub menu","kind":"link","url":"https://example.org"}`
	req := httptest.NewRequest("POST", "/api/menus", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(400), resp["code"])
	assert.Equal(t, "parent menu does not exist", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuHandler_Create_InvalidKind(t *testing.T) {
	_, cleanup := setupMenuMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/menus", NewMenuHandler().Create)
	body := `{"name":"Menu","kind":"widget"}`
	req := httptest.NewRequest("POST", "/api/menus", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "kind must be page, board or link")
}

func TestMenuHandler_Create_LinkAtRoot(t *testing.T) {
	mock, cleanup := setupMenuMockDB(t)
	defer cleanup()

	// sibling count for default sort_order, then insert
	mock.ExpectQuery("SELECT count.* FROM `menus`").WithArgs(0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `menus`").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/menus", NewMenuHandler().Create)
	body := `{"name":"External","kind":"link","url":"https://example.org"}`
	req := httptest.NewRequest("POST", "/api/menus", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(201), resp["code"])
	data := resp["data"].(map[string]interface{})
	// appended at the end of the sibling list
	assert.Equal(t, float64(3), data["sort_order"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuHandler_Update_SelfAsParent(t *testing.T) {
	mock, cleanup := setupMenuMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(menuRowCols).
			AddRow(1, 0, "Menu 1", "", "link", nil, nil, 0, true, time.Now(), time.Now(), nil))

	router := gin.New()
	router.PUT("/api/menus/:id", NewMenuHandler().Update)
	body := `{"parent_id":1}`
	req := httptest.NewRequest("PUT", "/api/menus/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "menu cannot be its own parent")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuHandler_Move_CycleRejectedWithoutWrites(t *testing.T) {
	mock, cleanup := setupMenuMockDB(t)
	defer cleanup()

	// flat list: 2 is a child of 1, dragging 1 inside 2 is a cycle
	mock.ExpectQuery("SELECT .* FROM `menus`").
		WillReturnRows(sqlmock.NewRows(menuRowCols).
			AddRow(1, 0, "Parent", "", "link", nil, nil, 0, true, time.Now(), time.Now(), nil).
			AddRow(2, 1, "Child", "", "link", nil, nil, 0, true, time.Now(), time.Now(), nil))

	router := gin.New()
	router.PUT("/api/menus/:id/move", NewMenuHandler().Move)
	body := `{"target_id":2,"position":"inside"}`
	req := httptest.NewRequest("PUT", "/api/menus/1/move", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "descendant")
	// no UPDATE was expected or executed
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuHandler_Move_PersistsPlan(t *testing.T) {
	mock, cleanup := setupMenuMockDB(t)
	defer cleanup()

	// three root menus; drag 3 before 1 renumbers all three
	mock.ExpectQuery("SELECT .* FROM `menus`").
		WillReturnRows(sqlmock.NewRows(menuRowCols).
			AddRow(1, 0, "A", "", "link", nil, nil, 0, true, time.Now(), time.Now(), nil).
			AddRow(2, 0, "B", "", "link", nil, nil, 1, true, time.Now(), time.Now(), nil).
			AddRow(3, 0, "C", "", "link", nil, nil, 2, true, time.Now(), time.Now(), nil))

	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `menus`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	router := gin.New()
	router.PUT("/api/menus/:id/move", NewMenuHandler().Move)
	body := `{"target_id":1,"position":"before"}`
	req := httptest.NewRequest("PUT", "/api/menus/3/move", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["updated"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuHandler_Delete_WithChildren(t *testing.T) {
	mock, cleanup := setupMenuMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(menuRowCols).
			AddRow(1, 0, "Parent", "", "link", nil, nil, 0, true, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT count.* FROM `menus`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	router := gin.New()
	router.DELETE("/api/menus/:id", NewMenuHandler().Delete)
	req := httptest.NewRequest("DELETE", "/api/menus/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "children")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "green-campus", slugify("Green Campus", ""))
	assert.Equal(t, "notice", slugify("Anything", "/boards/notice"))
	assert.Equal(t, "a-b-c", slugify("A  B--C", ""))
	// non-latin names fall back to a generated slug
	assert.NotEmpty(t, slugify("공지사항", ""))
}
