package providers

import (
	_ "github.com/verilens/verilens/src/ai/openrouter"
)
