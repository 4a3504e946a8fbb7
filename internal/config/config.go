package config

import (
	"flag"
	"os"

	"github.com/caarlos0/env/v8"
)

type Config interface {
	ServerAddress() string
	DatabaseURI() string
	FulfillmentSystemAddress() string
	LogLevel() string
	ProcessorWorkersCount() int
	ProcessorQueueSize() int
}

type Builder struct {
	parameters *parameters
	arguments  []string
	err        error
}

type parameters struct {
	ServerAddress            string `env:"RUN_ADDRESS"`
	DatabaseURI              string `env:"DATABASE_URI"`
	FulfillmentSystemAddress string `env:"FULFILLMENT_SYSTEM_ADDRESS"`
	LogLevel                 string `env:"LOG_LEVEL"`
	ProcessorWorkersCount    int    `env:"PROCESSOR_WORKERS"`
	ProcessorQueueSize       int    `env:"PROCESSOR_QUEUE_SIZE"`
}

const (
	defaultServerAddress         = "localhost:8080"
	defaultLogLevel              = "info"
	defaultProcessorWorkersCount = 4
	defaultProcessorQueueSize    = 64
)

func NewBuilder() *Builder {
	return &Builder{
		parameters: &parameters{
			ServerAddress:         defaultServerAddress,
			LogLevel:              defaultLogLevel,
			ProcessorWorkersCount: defaultProcessorWorkersCount,
			ProcessorQueueSize:    defaultProcessorQueueSize,
		},
		arguments: os.Args[1:],
	}
}

func (b *Builder) LoadEnv() *Builder {
	if err := env.Parse(b.parameters); err != nil && b.err == nil {
		b.err = err
	}

	return b
}

func (b *Builder) LoadFlags() *Builder {
	flags := flag.NewFlagSet("orderflow", flag.ContinueOnError)
	flags.StringVar(&b.parameters.ServerAddress, "a", b.parameters.ServerAddress, "адрес и порт запуска HTTP-сервера")
	flags.StringVar(&b.parameters.DatabaseURI, "d", "", "адрес подключения к PostgreSQL")
	flags.StringVar(&b.parameters.FulfillmentSystemAddress, "f", "", "адрес сервиса фулфилмента, при пустом значении используется симулятор")
	flags.StringVar(&b.parameters.LogLevel, "l", b.parameters.LogLevel, "уровень логирования")
	flags.IntVar(&b.parameters.ProcessorWorkersCount, "w", b.parameters.ProcessorWorkersCount, "количество воркеров обработки заказов")
	flags.IntVar(&b.parameters.ProcessorQueueSize, "q", b.parameters.ProcessorQueueSize, "размер очереди обработки заказов")
	if err := flags.Parse(b.arguments); err != nil && b.err == nil {
		b.err = err
	}

	return b
}

func (b *Builder) Build() (Config, error) {
	return b, b.err
}

func (b *Builder) ServerAddress() string {
	return b.parameters.ServerAddress
}

func (b *Builder) DatabaseURI() string {
	return b.parameters.DatabaseURI
}

func (b *Builder) FulfillmentSystemAddress() string {
	return b.parameters.FulfillmentSystemAddress
}

func (b *Builder) LogLevel() string {
	return b.parameters.LogLevel
}

func (b *Builder) ProcessorWorkersCount() int {
	return b.parameters.ProcessorWorkersCount
}

func (b *Builder) ProcessorQueueSize() int {
	return b.parameters.ProcessorQueueSize
}
