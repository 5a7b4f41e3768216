// Package server exposes UPS telemetry over a small HTTP JSON API.
package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/upsehat/upse/pkg/ups"
)

// Server serves UPS telemetry. The protocol layer does no locking, so the
// server owns the one mutex that serializes bus access across requests.
type Server struct {
	mu  sync.Mutex
	ups *ups.UpsHatE
}

// New returns a Server reading from the given device facade.
func New(device *ups.UpsHatE) *Server {
	return &Server{ups: device}
}

// Router builds the gin engine with all telemetry routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))

	router.GET("/battery", s.getBattery)
	router.GET("/cells", s.getCells)
	router.GET("/vbus", s.getVBus)
	router.GET("/power", s.getPower)
	router.GET("/communication", s.getCommunication)
	router.GET("/battery-low", s.getBatteryLow)
	router.GET("/power-off-pending", s.getPowerOffPending)
	router.POST("/power-off", s.postPowerOff)

	return router
}

// Run serves the API on the given address until the listener fails.
func (s *Server) Run(listen string) error {
	logrus.WithField("listen", listen).Info("upse telemetry server starting")
	return s.Router().Run(listen)
}

func (s *Server) getBattery(c *gin.Context) {
	s.mu.Lock()
	state, err := s.ups.GetBatteryState()
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, state)
}

func (s *Server) getCells(c *gin.Context) {
	s.mu.Lock()
	cells, err := s.ups.GetCellVoltage()
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, cells)
}

func (s *Server) getVBus(c *gin.Context) {
	s.mu.Lock()
	vbus, err := s.ups.GetUsbCVBus()
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, vbus)
}

func (s *Server) getPower(c *gin.Context) {
	s.mu.Lock()
	power, err := s.ups.GetPowerState()
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"chargingState":     power.ChargingState.String(),
		"chargerActivity":   power.ChargerActivity.String(),
		"usbcInputState":    power.UsbCInputState.String(),
		"usbcPowerDelivery": power.UsbCPowerDelivery.String(),
	})
}

func (s *Server) getCommunication(c *gin.Context) {
	s.mu.Lock()
	comm, err := s.ups.GetCommunicationState()
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"bq4050": comm.BQ4050.String(),
		"ip2368": comm.IP2368.String(),
	})
}

func (s *Server) getBatteryLow(c *gin.Context) {
	s.mu.Lock()
	low, err := s.ups.IsBatteryLow()
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, low)
}

func (s *Server) getPowerOffPending(c *gin.Context) {
	s.mu.Lock()
	pending, err := s.ups.IsPowerOffPending()
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, pending)
}

// postPowerOff issues the power-off command. There is no undo: the device
// cuts power a fixed delay after accepting the sentinel.
func (s *Server) postPowerOff(c *gin.Context) {
	s.mu.Lock()
	err := s.ups.ForcePowerOff()
	var pending bool
	if err == nil {
		pending, err = s.ups.IsPowerOffPending()
	}
	s.mu.Unlock()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Warn("power-off command issued over HTTP")
	c.IndentedJSON(http.StatusAccepted, gin.H{"pending": pending})
}
