package services

import (
	"strings"
	"sync"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
)

// In-memory repository fakes. The executor argument is ignored; state lives
// in the fake itself.

type fakeClientRepository struct {
	mu      sync.Mutex
	nextID  int64
	clients map[int64]models.Client
}

func newFakeClientRepository() *fakeClientRepository {
	return &fakeClientRepository{clients: map[int64]models.Client{}}
}

func (f *fakeClientRepository) CreateClient(_ repositories.SQLExecutor, client *models.Client) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.clients {
		if strings.EqualFold(existing.Email, client.Email) {
			return 0, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	client.ID = f.nextID
	f.clients[client.ID] = *client
	return client.ID, nil
}

func (f *fakeClientRepository) GetClientByID(_ repositories.SQLExecutor, id int64) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	client, ok := f.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &client, nil
}

func (f *fakeClientRepository) GetClientByEmail(_ repositories.SQLExecutor, email string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, client := range f.clients {
		if strings.EqualFold(client.Email, email) {
			copied := client
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClientRepository) GetAllClients(_ repositories.SQLExecutor) ([]models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clients := []models.Client{}
	for id := int64(1); id <= f.nextID; id++ {
		if client, ok := f.clients[id]; ok {
			clients = append(clients, client)
		}
	}
	return clients, nil
}

func (f *fakeClientRepository) UpdateClient(_ repositories.SQLExecutor, client *models.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[client.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.clients[client.ID] = *client
	return nil
}

func (f *fakeClientRepository) UpdateLoyalty(_ repositories.SQLExecutor, id int64, points int, tier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	client, ok := f.clients[id]
	if !ok {
		return repositories.ErrNotFound
	}
	client.LoyaltyPoints = points
	client.LoyaltyTier = tier
	f.clients[id] = client
	return nil
}

func (f *fakeClientRepository) DeleteClient(_ repositories.SQLExecutor, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

type fakeRewardRepository struct {
	nextID  int64
	rewards map[int64]models.Reward
}

func newFakeRewardRepository() *fakeRewardRepository {
	return &fakeRewardRepository{rewards: map[int64]models.Reward{}}
}

func (f *fakeRewardRepository) CreateReward(_ repositories.SQLExecutor, reward *models.Reward) (int64, error) {
	f.nextID++
	reward.ID = f.nextID
	f.rewards[reward.ID] = *reward
	return reward.ID, nil
}

func (f *fakeRewardRepository) GetRewardByID(_ repositories.SQLExecutor, id int64) (*models.Reward, error) {
	reward, ok := f.rewards[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &reward, nil
}

func (f *fakeRewardRepository) GetRewards(_ repositories.SQLExecutor, activeOnly bool) ([]models.Reward, error) {
	rewards := []models.Reward{}
	for id := int64(1); id <= f.nextID; id++ {
		reward, ok := f.rewards[id]
		if !ok || (activeOnly && !reward.IsActive) {
			continue
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}

func (f *fakeRewardRepository) UpdateReward(_ repositories.SQLExecutor, reward *models.Reward) error {
	if _, ok := f.rewards[reward.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.rewards[reward.ID] = *reward
	return nil
}

func (f *fakeRewardRepository) DeleteReward(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.rewards[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rewards, id)
	return nil
}

type fakeAppointmentRepository struct {
	nextID       int64
	appointments map[int64]models.Appointment
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: map[int64]models.Appointment{}}
}

func (f *fakeAppointmentRepository) CreateAppointment(_ repositories.SQLExecutor, appointment *models.Appointment) (int64, error) {
	f.nextID++
	appointment.ID = f.nextID
	f.appointments[appointment.ID] = *appointment
	return appointment.ID, nil
}

func (f *fakeAppointmentRepository) GetAppointmentByID(_ repositories.SQLExecutor, id int64) (*models.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &appointment, nil
}

func (f *fakeAppointmentRepository) GetAppointments(_ repositories.SQLExecutor, filters models.AppointmentFilters) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	for id := int64(1); id <= f.nextID; id++ {
		appointment, ok := f.appointments[id]
		if !ok {
			continue
		}
		if filters.StartDate != nil && appointment.Date < *filters.StartDate {
			continue
		}
		if filters.EndDate != nil && appointment.Date > *filters.EndDate {
			continue
		}
		if filters.Status != nil && appointment.Status != *filters.Status {
			continue
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}

func (f *fakeAppointmentRepository) GetAppointmentsByDateAndStatus(executor repositories.SQLExecutor, date, status string) ([]models.Appointment, error) {
	return f.GetAppointments(executor, models.AppointmentFilters{StartDate: &date, EndDate: &date, Status: &status})
}

func (f *fakeAppointmentRepository) ExistsAtSlot(_ repositories.SQLExecutor, date, timeSlot string, excludeID int64) (bool, error) {
	for _, appointment := range f.appointments {
		if appointment.Date == date && appointment.Time == timeSlot &&
			appointment.Status != models.AppointmentCancelled && appointment.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepository) UpdateAppointment(_ repositories.SQLExecutor, appointment *models.Appointment) error {
	if _, ok := f.appointments[appointment.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.appointments[appointment.ID] = *appointment
	return nil
}

func (f *fakeAppointmentRepository) DeleteAppointment(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.appointments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.appointments, id)
	return nil
}

type fakeServiceRepository struct {
	nextID   int64
	services map[int64]models.Service
}

func newFakeServiceRepository() *fakeServiceRepository {
	return &fakeServiceRepository{services: map[int64]models.Service{}}
}

func (f *fakeServiceRepository) CreateService(_ repositories.SQLExecutor, service *models.Service) (int64, error) {
	f.nextID++
	service.ID = f.nextID
	f.services[service.ID] = *service
	return service.ID, nil
}

func (f *fakeServiceRepository) GetServiceByID(_ repositories.SQLExecutor, id int64) (*models.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &service, nil
}

func (f *fakeServiceRepository) GetServiceByName(_ repositories.SQLExecutor, name string) (*models.Service, error) {
	for _, service := range f.services {
		if strings.EqualFold(service.Name, name) {
			copied := service
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeServiceRepository) GetServices(_ repositories.SQLExecutor, activeOnly bool) ([]models.Service, error) {
	services := []models.Service{}
	for id := int64(1); id <= f.nextID; id++ {
		service, ok := f.services[id]
		if !ok || (activeOnly && !service.IsActive) {
			continue
		}
		services = append(services, service)
	}
	return services, nil
}

func (f *fakeServiceRepository) UpdateService(_ repositories.SQLExecutor, service *models.Service) error {
	if _, ok := f.services[service.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.services[service.ID] = *service
	return nil
}

func (f *fakeServiceRepository) DeleteService(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.services[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.services, id)
	return nil
}

type fakeEmployeeRepository struct {
	nextID    int64
	employees map[int64]models.Employee
}

func newFakeEmployeeRepository() *fakeEmployeeRepository {
	return &fakeEmployeeRepository{employees: map[int64]models.Employee{}}
}

func (f *fakeEmployeeRepository) CreateEmployee(_ repositories.SQLExecutor, employee *models.Employee) (int64, error) {
	f.nextID++
	employee.ID = f.nextID
	f.employees[employee.ID] = *employee
	return employee.ID, nil
}

func (f *fakeEmployeeRepository) GetEmployeeByID(_ repositories.SQLExecutor, id int64) (*models.Employee, error) {
	employee, ok := f.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &employee, nil
}

func (f *fakeEmployeeRepository) GetEmployeeByEmail(_ repositories.SQLExecutor, email string) (*models.Employee, error) {
	for _, employee := range f.employees {
		if strings.EqualFold(employee.Email, email) {
			copied := employee
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeEmployeeRepository) GetEmployees(_ repositories.SQLExecutor) ([]models.Employee, error) {
	employees := []models.Employee{}
	for id := int64(1); id <= f.nextID; id++ {
		if employee, ok := f.employees[id]; ok {
			employees = append(employees, employee)
		}
	}
	return employees, nil
}

func (f *fakeEmployeeRepository) UpdateEmployee(_ repositories.SQLExecutor, employee *models.Employee) error {
	if _, ok := f.employees[employee.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.employees[employee.ID] = *employee
	return nil
}

func (f *fakeEmployeeRepository) DeleteEmployee(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.employees[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.employees, id)
	return nil
}

type fakeUserRepository struct {
	nextID int64
	users  map[int64]models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[int64]models.User{}}
}

func (f *fakeUserRepository) CreateUser(user *models.User) (int64, error) {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return 0, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return user.ID, nil
}

func (f *fakeUserRepository) GetUserByID(id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUserRepository) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			copied := user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepository) UpdatePassword(id int64, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.PasswordHash = passwordHash
	f.users[id] = user
	return nil
}

func (f *fakeUserRepository) SetTwoFactorSecret(id int64, secret *string) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.TwoFactorSecret = secret
	f.users[id] = user
	return nil
}

func (f *fakeUserRepository) SetTwoFactorEnabled(id int64, enabled bool) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.TwoFactorEnabled = enabled
	f.users[id] = user
	return nil
}

// fakeNotifier records which notifications went out.
type fakeNotifier struct {
	created   []int64
	confirmed []int64
	cancelled []int64
	reminded  []int64
}

func (f *fakeNotifier) SendAppointmentCreated(a *models.Appointment)   { f.created = append(f.created, a.ID) }
func (f *fakeNotifier) SendAppointmentConfirmed(a *models.Appointment) { f.confirmed = append(f.confirmed, a.ID) }
func (f *fakeNotifier) SendAppointmentCancelled(a *models.Appointment) { f.cancelled = append(f.cancelled, a.ID) }
func (f *fakeNotifier) SendAppointmentReminder(a *models.Appointment)  { f.reminded = append(f.reminded, a.ID) }
