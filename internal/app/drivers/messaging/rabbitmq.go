package messaging

import (
	"fmt"
	"log"

	"zahara-service/internal/app/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

func NewRabbitMQConnection(driverConfig *config.DriverConfig) *amqp.Connection {
	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp.Dial(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %s", err.Error())
	}
	log.Println("Successfully connected to RabbitMQ")
	return conn
}
