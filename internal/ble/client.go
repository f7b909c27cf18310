// Package ble provides low-level BLE communication with GoCube devices.
//
// The client owns the connection lifecycle only: scanning, connecting,
// notification subscription and command writes. Payload interpretation
// happens upstream; the client hands raw notification bytes to a single
// callback and reports lifecycle changes on a status stream.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubeview/internal/protocol"
	"tinygo.org/x/bluetooth"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
)

// Status values reported on the status stream.
const (
	StatusDisconnected = "Disconnected"
	StatusConnecting   = "Connecting"
	StatusConnected    = "Connected"
)

// BLE UUIDs
var (
	serviceUUID = bluetooth.NewUUID(mustParseUUID(protocol.ServiceUUID))
	txCharUUID  = bluetooth.NewUUID(mustParseUUID(protocol.TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID(mustParseUUID(protocol.RxCharUUID))
)

func mustParseUUID(s string) [16]byte {
	var uuid [16]byte
	clean := strings.ReplaceAll(s, "-", "")
	for i := 0; i < 16; i++ {
		var b byte
		fmt.Sscanf(clean[i*2:i*2+2], "%02x", &b)
		uuid[i] = b
	}
	return uuid
}

// ScanResult represents a discovered smart cube.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the BLE connection to one smart cube.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	txChar  bluetooth.DeviceCharacteristic
	rxChar  bluetooth.DeviceCharacteristic

	mu         sync.RWMutex
	connected  bool
	deviceName string
	deviceUUID string

	onNotification func([]byte)
	onStatus       func(string)
}

// NewClient creates a BLE client on the default adapter.
func NewClient() (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter}, nil
}

// SetNotificationCallback sets the callback for raw notification payloads.
func (c *Client) SetNotificationCallback(cb func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotification = cb
}

// SetStatusCallback sets the callback for connection status changes.
// The callback receives StatusDisconnected, StatusConnecting or
// StatusConnected.
func (c *Client) SetStatusCallback(cb func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = cb
}

func (c *Client) reportStatus(status string) {
	c.mu.RLock()
	cb := c.onStatus
	c.mu.RUnlock()
	if cb != nil {
		cb(status)
	}
}

// Scan discovers nearby smart cubes within the timeout.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return nil, ErrAlreadyConnected
	}
	c.mu.RUnlock()

	var results []ScanResult
	var mu sync.Mutex
	seen := make(map[string]bool)

	done := make(chan struct{})

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			if seen[addr] {
				mu.Unlock()
				return
			}
			seen[addr] = true
			mu.Unlock()

			if strings.HasPrefix(strings.ToLower(name), "gocube") {
				mu.Lock()
				results = append(results, ScanResult{
					Name:    name,
					UUID:    addr,
					RSSI:    result.RSSI,
					Address: result.Address,
				})
				mu.Unlock()
			}
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	<-done

	return results, nil
}

// Connect connects to a cube by UUID, discovered via Scan.
func (c *Client) Connect(ctx context.Context, deviceUUID string) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	c.reportStatus(StatusConnecting)

	var targetAddr bluetooth.Address
	var targetName string
	found := make(chan struct{})
	var foundOnce sync.Once

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.Address.String() == deviceUUID {
				targetAddr = result.Address
				targetName = result.LocalName()
				foundOnce.Do(func() {
					close(found)
				})
			}
		})
	}()

	select {
	case <-found:
		c.adapter.StopScan()
	case <-time.After(10 * time.Second):
		c.adapter.StopScan()
		c.reportStatus(StatusDisconnected)
		return ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		c.reportStatus(StatusDisconnected)
		return ctx.Err()
	}

	device, err := c.adapter.Connect(targetAddr, bluetooth.ConnectionParams{})
	if err != nil {
		c.reportStatus(StatusDisconnected)
		return fmt.Errorf("failed to connect: %w", err)
	}

	if err := c.subscribe(device, targetName, deviceUUID); err != nil {
		device.Disconnect()
		c.reportStatus(StatusDisconnected)
		return err
	}

	c.reportStatus(StatusConnected)
	return nil
}

// subscribe discovers the cube service and enables notifications.
func (c *Client) subscribe(device bluetooth.Device, name, uuid string) error {
	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		return fmt.Errorf("cube service not found")
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		if ch.UUID() == txCharUUID {
			txChar = ch
		} else if ch.UUID() == rxCharUUID {
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.txChar = txChar
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = name
	c.deviceUUID = uuid
	c.mu.Unlock()

	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.deviceUUID = ""
	c.mu.Unlock()

	c.reportStatus(StatusDisconnected)
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// SendCommand writes a command frame to the cube.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := protocol.BuildCommand(cmd)
	_, err := c.rxChar.WriteWithoutResponse(data)
	if err != nil {
		_, err = c.rxChar.Write(data)
	}
	return err
}

// RequestState asks the cube for its current facelet state.
func (c *Client) RequestState() error {
	return c.SendCommand(protocol.CmdRequestState)
}

// RequestBattery asks the cube for its battery level.
func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// FlashBacklight flashes the cube backlight.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

// handleNotification forwards raw notification bytes upstream.
func (c *Client) handleNotification(data []byte) {
	c.mu.RLock()
	cb := c.onNotification
	c.mu.RUnlock()

	if cb != nil {
		buf := make([]byte, len(data))
		copy(buf, data)
		cb(buf)
	}
}
