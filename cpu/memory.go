package cpu

const (
	REGISTER_COUNT = 16   // General purpose registers R0-R15.
	MEMORY_SIZE    = 1024 // Default memory capacity, in words.
)
