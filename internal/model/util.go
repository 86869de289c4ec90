package model

// MigrateAble is array of model instance, use for migrating database.
// Order matters: referenced tables come first.
var MigrateAble = []interface{}{
	&User{},
	&Job{},
	&Application{},
}
