package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/gascalc/internal/config"
	"github.com/jgoulah/gascalc/pkg/models"
)

// Publisher sends archived daily totals to MQTT and/or Home Assistant
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	haConfig    config.HAConfig
	httpClient  *http.Client
}

// New creates a new publisher (supports both MQTT and HA HTTP API)
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig) (*Publisher, error) {
	if !mqttCfg.Enabled && !haCfg.Enabled {
		return nil, fmt.Errorf("neither MQTT nor Home Assistant is enabled in config")
	}

	// Validate HA config if enabled
	if haCfg.Enabled {
		if haCfg.URL == "" {
			return nil, fmt.Errorf("Home Assistant URL is required when enabled")
		}
		if haCfg.Token == "" {
			return nil, fmt.Errorf("Home Assistant token is required when enabled")
		}
		if haCfg.EntityID == "" {
			return nil, fmt.Errorf("Home Assistant entity_id is required when enabled")
		}
	}

	var client mqtt.Client
	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, fmt.Errorf("MQTT broker address is required when enabled")
		}

		// Configure MQTT client options
		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID("gascalc")
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(true)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		// Create and connect client
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
	}

	return &Publisher{
		client:      client,
		topicPrefix: mqttCfg.GetTopicPrefix(),
		haConfig:    haCfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Payload is the JSON body published for one archived day
type Payload struct {
	ReportID string  `json:"report_id"`
	Day      int     `json:"day"`
	Oxygen   float64 `json:"oxygen_liters"`
	Diluent  float64 `json:"diluent_liters"`
	Mode     string  `json:"mode"`
}

// HAState matches the Home Assistant POST /api/states/<entity_id> body
type HAState struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Topic returns the MQTT topic a day's totals are published on
func (p *Publisher) Topic(day int) string {
	return fmt.Sprintf("%s/day/%d", p.topicPrefix, day)
}

// Publish sends one archived day to every enabled sink
func (p *Publisher) Publish(day models.ArchivedDay) error {
	payload := Payload{
		ReportID: day.ReportID,
		Day:      day.Day,
		Oxygen:   day.Oxygen,
		Diluent:  day.Diluent,
		Mode:     day.Mode.String(),
	}

	if p.client != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding payload: %w", err)
		}
		token := p.client.Publish(p.Topic(day.Day), 1, true, body)
		if !token.WaitTimeout(10 * time.Second) {
			return fmt.Errorf("publishing to MQTT: timed out")
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("publishing to MQTT: %w", err)
		}
	}

	if p.haConfig.Enabled {
		if err := p.postState(payload); err != nil {
			return err
		}
	}

	return nil
}

// postState writes the day's oxygen liters as the Home Assistant entity state
func (p *Publisher) postState(payload Payload) error {
	apiURL := fmt.Sprintf("%s/api/states/%s", p.haConfig.URL, p.haConfig.EntityID)

	state := HAState{
		State: fmt.Sprintf("%.1f", payload.Oxygen),
		Attributes: map[string]any{
			"unit_of_measurement": "L",
			"day":                 payload.Day,
			"diluent_liters":      payload.Diluent,
			"report_id":           payload.ReportID,
			"mode":                payload.Mode,
		},
	}

	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.haConfig.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// Read error response body for debugging
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: status %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
