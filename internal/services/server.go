package services

import (
	"errors"
	"math/rand"
	"time"

	"fleetpanel/internal/config"
	"fleetpanel/internal/models"

	"gorm.io/gorm"
)

var ErrServerNotFound = errors.New("server not found")

var checkStatuses = []models.ServerStatus{
	models.StatusOnline,
	models.StatusOffline,
	models.StatusWarning,
}

type ServerService struct {
	cfg *config.Config
}

func NewServerService(cfg *config.Config) *ServerService {
	return &ServerService{cfg: cfg}
}

// List returns all servers in creation order
func (s *ServerService) List() ([]models.Server, error) {
	var servers []models.Server
	if err := models.DB.Order("id").Find(&servers).Error; err != nil {
		return nil, err
	}
	return servers, nil
}

// Recent returns the n most recently added servers, newest first
func (s *ServerService) Recent(n int) ([]models.Server, error) {
	var servers []models.Server
	if err := models.DB.Order("id DESC").Limit(n).Find(&servers).Error; err != nil {
		return nil, err
	}
	return servers, nil
}

// Add creates a server with an online initial status
func (s *ServerService) Add(name, ip, description string, createdBy uint) (*models.Server, error) {
	server := &models.Server{
		Name:        name,
		IP:          ip,
		Description: description,
		Status:      models.StatusOnline,
		LastCheck:   time.Now(),
		CreatedBy:   &createdBy,
	}
	if err := models.DB.Create(server).Error; err != nil {
		return nil, err
	}
	return server, nil
}

// Delete removes a server by id. Deleting an id that does not exist is a
// no-op: a concurrent admin may have removed it already.
func (s *ServerService) Delete(id uint) error {
	return models.DB.Delete(&models.Server{}, id).Error
}

// Check assigns a random status in place of real connectivity probing and
// stamps the check time.
func (s *ServerService) Check(id uint) (models.ServerStatus, error) {
	var server models.Server
	if err := models.DB.First(&server, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrServerNotFound
		}
		return "", err
	}

	status := checkStatuses[rand.Intn(len(checkStatuses))]
	server.Status = status
	server.LastCheck = time.Now()
	if err := models.DB.Save(&server).Error; err != nil {
		return "", err
	}
	return status, nil
}

var demoServers = []models.Server{
	{Name: "Primary server", IP: "192.168.1.100", Status: models.StatusOnline},
	{Name: "Backup server", IP: "192.168.1.101", Status: models.StatusOffline},
	{Name: "Database", IP: "192.168.1.102", Status: models.StatusOnline},
}

// SeedDemoServers registers a small fixture fleet when the servers table is
// empty. Demo convenience only; disabled via demo.seed_servers.
func (s *ServerService) SeedDemoServers() error {
	if !s.cfg.Demo.SeedServers {
		return nil
	}

	var count int64
	if err := models.DB.Model(&models.Server{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	servers := make([]models.Server, len(demoServers))
	copy(servers, demoServers)
	now := time.Now()
	for i := range servers {
		servers[i].LastCheck = now
	}
	return models.DB.Create(&servers).Error
}

// Counts returns the dashboard totals: all servers, online ones and the
// problem ones (anything not online).
func (s *ServerService) Counts() (total, online, problem int64, err error) {
	if err = models.DB.Model(&models.Server{}).Count(&total).Error; err != nil {
		return
	}
	if err = models.DB.Model(&models.Server{}).Where("status = ?", models.StatusOnline).Count(&online).Error; err != nil {
		return
	}
	problem = total - online
	return
}
