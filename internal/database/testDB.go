package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	m "jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded fixtures
var (
	TestAdminUser m.User
	TestUser1     m.User
	TestUser2     m.User

	// TestSeedPassword is the plain password of every seeded user
	TestSeedPassword = "SeedPass123!"

	// TestJob1 is the newest job and has TestApplication1 attached
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job

	// TestApplication1 is TestUser2 applying for TestJob1
	TestApplication1 m.Application
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		Driver:           DriverPostgres,
		UseConnectionStr: true,
		ConnectionStr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts one admin, two users, three jobs and one application.
func seedTestData(db *DBinstanceStruct) error {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	users := []m.User{
		{FullName: "Ada Admin", Username: "admin_user", Email: "admin@example.com", PhoneNumber: "0300000001", Role: m.RoleAdmin},
		{FullName: "Alice Nguyen", Username: "job_seeker_1", Email: "seeker1@example.com", PhoneNumber: "0100000001", Role: m.RoleUser},
		{FullName: "Bob Somsak", Username: "job_seeker_2", Email: "seeker2@example.com", PhoneNumber: "0100000002", Role: m.RoleUser},
	}
	for i := range users {
		users[i].Password = hashedPwd
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestAdminUser, TestUser1, TestUser2 = users[0], users[1], users[2]

	now := time.Now()
	jobs := []m.Job{
		{
			EditableJobInfo: m.EditableJobInfo{
				Title:          "Backend Engineer",
				Description:    "Work on Go services and database layers.",
				Location:       "Bangkok",
				Company:        "TechNova",
				EmploymentType: "Full-time",
			},
			PostedAt: now.Add(-1 * time.Hour),
		},
		{
			EditableJobInfo: m.EditableJobInfo{
				Title:          "Frontend Developer",
				Description:    "Build the component library in React.",
				Location:       "Remote",
				Company:        "TechNova",
				EmploymentType: "Part-time",
			},
			PostedAt: now.AddDate(0, 0, -10),
		},
		{
			EditableJobInfo: m.EditableJobInfo{
				Title:          "Data Analyst",
				Description:    "Support data cleansing and dashboard creation.",
				Location:       "Chiang Mai",
				Company:        "DataForge",
				EmploymentType: "Internship",
			},
			PostedAt: now.AddDate(0, 0, -45),
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1, TestJob2, TestJob3 = jobs[0], jobs[1], jobs[2]

	app := m.Application{
		JobID:       TestJob1.ID,
		UserID:      TestUser2.ID,
		CoverLetter: "I have five years of Go experience.",
		CVLink:      "https://cv.example.com/bob.pdf",
		Status:      m.StatusApplied,
	}
	if err := db.Create(&app).Error; err != nil {
		return err
	}
	TestApplication1 = app

	return nil
}
