package ports

// InstanceLock guards against two houndup processes driving the same user's browser.
type InstanceLock interface {
	TryLock() (bool, error)
	Unlock() error
}
