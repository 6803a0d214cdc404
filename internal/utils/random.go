package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/agendaflow/agenda-crm/backend/internal/domain"
)

var commonFirstNames = []string{
	"María", "José", "Luis", "Ana", "Carlos", "Carmen", "Juan", "Laura",
	"Andrés", "Paula", "Diego", "Sofía", "Jorge", "Valentina", "Camilo",
	"Daniela", "Felipe", "Natalia", "Santiago", "Isabel",
}

var commonSurnames = []string{
	"García", "Rodríguez", "Martínez", "López", "González", "Hernández",
	"Pérez", "Sánchez", "Ramírez", "Torres", "Flórez", "Díaz", "Vargas",
	"Castro", "Ortiz", "Morales", "Gutiérrez", "Rojas", "Mejía", "Quintero",
}

func GenerateRandomFullName() string {
	return commonFirstNames[rand.Intn(len(commonFirstNames))] + " " + commonSurnames[rand.Intn(len(commonSurnames))]
}

var roles = []domain.Role{
	domain.RoleSuperuser,
	domain.RoleAdmin,
	domain.RoleAgent,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

// GenerateUsernameFromFullName arma un usuario en minúsculas y sin tildes
// a partir del nombre, con un sufijo numérico para evitar colisiones.
func GenerateUsernameFromFullName(fullName string) string {
	username := accentReplacer.Replace(strings.ToLower(fullName))
	username = strings.ReplaceAll(username, " ", ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomSchedule() *domain.Schedule {
	return &domain.Schedule{
		Name:            "Agenda " + GenerateRandomID(3, 3),
		Description:     "Agenda de prueba " + GenerateRandomID(10, 5),
		CapacityPerSlot: int32(rand.Intn(5) + 1),
	}
}

var sampleServices = []struct {
	name     string
	duration int32
	price    float64
}{
	{"Consulta general", 30, 80000},
	{"Limpieza dental", 45, 120000},
	{"Valoración inicial", 20, 50000},
	{"Control", 15, 40000},
	{"Sesión de fisioterapia", 60, 150000},
}

func GenerateRandomService() *domain.Service {
	s := sampleServices[rand.Intn(len(sampleServices))]
	return &domain.Service{
		Name:            s.name + " " + GenerateRandomID(2, 2),
		DurationMinutes: s.duration,
		BasePrice:       s.price,
		Concurrency:     int32(rand.Intn(3) + 1),
		Color:           fmt.Sprintf("#%06x", rand.Intn(0x1000000)),
	}
}

func GenerateRandomAppointment(scheduleID int64, serviceName, date string) *domain.Appointment {
	hour := rand.Intn(10) + 8
	fullName := GenerateRandomFullName()

	return &domain.Appointment{
		ScheduleID:     scheduleID,
		ServiceName:    serviceName,
		Date:           date,
		Time:           fmt.Sprintf("%02d:00", hour),
		FullName:       fullName,
		DocumentType:   "CC",
		DocumentNumber: fmt.Sprintf("%d", rand.Intn(90000000)+10000000),
		Phone:          fmt.Sprintf("3%09d", rand.Intn(1000000000)),
		Confirmation:   domain.ConfirmationPending,
	}
}
