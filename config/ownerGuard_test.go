package config

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ownedThing struct {
	ID      int
	OwnerId string
	Title   string
}

type plainThing struct {
	ID    int
	Title string
}

func newGuardedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	if err := db.Use(NewOwnerGuardPlugin()); err != nil {
		t.Fatalf("install plugin: %v", err)
	}
	return db, mock
}

func TestOwnerGuard_RejectsUnscopedWrite(t *testing.T) {
	db, mock := newGuardedDB(t)

	err := db.Model(&ownedThing{}).Where("id = ?", 1).Update("title", "x").Error
	if !errors.Is(err, ErrUnscopedOwnerWrite) {
		t.Fatalf("err=%v want ErrUnscopedOwnerWrite", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected SQL: %v", err)
	}
}

func TestOwnerGuard_AllowsScopedWrite(t *testing.T) {
	db, mock := newGuardedDB(t)
	mock.ExpectExec("UPDATE `owned_things` SET `title`=\\? WHERE id = \\? AND owner_id = \\?").
		WithArgs("x", 1, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := db.Model(&ownedThing{}).Where("id = ? AND owner_id = ?", 1, "u1").Update("title", "x").Error
	if err != nil {
		t.Fatalf("scoped update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOwnerGuard_IgnoresTablesWithoutOwner(t *testing.T) {
	db, mock := newGuardedDB(t)
	mock.ExpectExec("UPDATE `plain_things` SET `title`=\\? WHERE id = \\?").
		WithArgs("x", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := db.Model(&plainThing{}).Where("id = ?", 1).Update("title", "x").Error; err != nil {
		t.Fatalf("update: %v", err)
	}
}
