package devops

import (
	"context"
	"fmt"
	"net"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// GetDSN renders the entry for the given gorm driver.
func (e DBEntry) GetDSN(driver string) string {
	switch driver {
	case "postgres":
		host, port, err := net.SplitHostPort(e.Host)
		if err != nil {
			host, port = e.Host, "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require TimeZone=UTC",
			host, port, e.Username, e.Password, e.Database)
	default:
		host := e.Host
		if !strings.Contains(host, ":") {
			host = host + ":3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC", e.Username, e.Password, host, e.Database)
	}
}

// ParseDBEntries decodes the yaml list stored in the parameter, keyed by lower-cased name.
func ParseDBEntries(value string) (map[string]DBEntry, error) {
	var entries []DBEntry
	if err := yaml.Unmarshal([]byte(value), &entries); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	result := make(map[string]DBEntry, len(entries))
	for _, entry := range entries {
		result[strings.ToLower(entry.Name)] = entry
	}
	return result, nil
}

func LoadDBEntries(ctx context.Context, paramName string) (map[string]DBEntry, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get parameter %s: %w", paramName, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("parameter %s is empty", paramName)
	}

	return ParseDBEntries(*out.Parameter.Value)
}
