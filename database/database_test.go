package database

import "testing"

func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	// Registration relies on gorm.ErrDuplicatedKey to report a duplicate
	// username when two inserts race; that sentinel only appears when the
	// dialector's error translation is switched on.
	if !gormConfig().TranslateError {
		t.Fatal("TranslateError is off; unique-index violations would not map to gorm.ErrDuplicatedKey")
	}
}
