package api

import (
	"bytes"
	"encoding/json"
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

var energyRowCols = []string{
	"id", "building_name", "year", "month", "electricity", "gas", "water",
	"created_at", "updated_at", "deleted_at",
}

func setupEnergyMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
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

func TestEnergyDataHandler_Create_NewKey(t *testing.T) {
	mock, cleanup := setupEnergyMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `energy_data`").
		WithArgs("Library", 2025, 3).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `energy_data`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/api/energy-data", NewEnergyDataHandler().Create)
	body := `{"building_name":"Library","year":2025,"month":3,"electricity":100,"gas":50,"water":10}`
	req := httptest.NewRequest("POST", "/api/energy-data", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnergyDataHandler_Create_ReplacesExistingKey(t *testing.T) {
	mock, cleanup := setupEnergyMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `energy_data`").
		WithArgs("Library", 2025, 3).
		WillReturnRows(sqlmock.NewRows(energyRowCols).
			AddRow(7, "Library", 2025, 3, 80.0, 40.0, 5.0, time.Now(), time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `energy_data`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// reload after update
	mock.ExpectQuery("SELECT .* FROM `energy_data`").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(energyRowCols).
			AddRow(7, "Library", 2025, 3, 100.0, 50.0, 10.0, time.Now(), time.Now(), nil))

	router := gin.New()
	router.POST("/api/energy-data", NewEnergyDataHandler().Create)
	body := `{"building_name":"Library","year":2025,"month":3,"electricity":100,"gas":50,"water":10}`
	req := httptest.NewRequest("POST", "/api/energy-data", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// replace, not duplicate: 200 with the updated row
	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "energy data replaced", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["electricity"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnergyDataHandler_Create_Validation(t *testing.T) {
	_, cleanup := setupEnergyMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/energy-data", NewEnergyDataHandler().Create)

	cases := []struct {
		body string
		want string
	}{
		{`{"building_name":"Library","year":2025,"month":13,"electricity":1}`, "month"},
		{`{"building_name":"Library","year":1800,"month":3,"electricity":1}`, "year"},
		{`{"building_name":"Library","year":2025,"month":3,"electricity":-1}`, "negative"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/api/energy-data", bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, 400, w.Code)
		assert.Contains(t, w.Body.String(), tc.want)
	}
}

func TestEnergyDataHandler_Update_NaturalKeyConflict(t *testing.T) {
	mock, cleanup := setupEnergyMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `energy_data`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(energyRowCols).
			AddRow(1, "Library", 2025, 3, 80.0, 40.0, 5.0, time.Now(), time.Now(), nil))
	// another row already owns the requested key
	mock.ExpectQuery("SELECT .* FROM `energy_data`").
		WithArgs("Gym", 2025, 4, 1).
		WillReturnRows(sqlmock.NewRows(energyRowCols).
			AddRow(2, "Gym", 2025, 4, 10.0, 0.0, 0.0, time.Now(), time.Now(), nil))

	router := gin.New()
	router.PUT("/api/energy-data/:id", NewEnergyDataHandler().Update)
	body := `{"building_name":"Gym","year":2025,"month":4,"electricity":80}`
	req := httptest.NewRequest("PUT", "/api/energy-data/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnergyDataHandler_Update_KeyCheckStorageError(t *testing.T) {
	mock, cleanup := setupEnergyMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `energy_data`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(energyRowCols).
			AddRow(1, "Library", 2025, 3, 80.0, 40.0, 5.0, time.Now(), time.Now(), nil))
	// the natural-key check fails outright: that is a 500, not "no duplicate"
	mock.ExpectQuery("SELECT .* FROM `energy_data`").
		WithArgs("Gym", 2025, 4, 1).
		WillReturnError(errors.New("driver: bad connection"))

	router := gin.New()
	router.PUT("/api/energy-data/:id", NewEnergyDataHandler().Update)
	body := `{"building_name":"Gym","year":2025,"month":4,"electricity":80}`
	req := httptest.NewRequest("PUT", "/api/energy-data/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 500, w.Code)
	// no UPDATE was attempted
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	get := func(query string) (int, int) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/x"+query, nil)
		return pagination(c, 20)
	}

	page, limit := get("")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = get("?page=3&limit=50")
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	page, limit = get("?page=-1&limit=9999")
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}
