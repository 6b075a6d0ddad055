package config

import (
	"github.com/photoprism/clusteval/internal/event"
)

var log = event.Log
