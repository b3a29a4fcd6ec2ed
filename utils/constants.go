// File: utils/constants.go
package utils

import "time"

// OffersCachePrefix is the prefix used for Redis job offers feed cache keys.
const OffersCachePrefix = "offers:"

// OffersCacheTTL is the time-to-live for offers feed cache entries. Short
// on purpose: a stale feed only costs a cleaner one failed accept.
const OffersCacheTTL = 60 * time.Second

// SweepLockKey guards the auto-assignment sweep so overlapping runs from
// multiple instances don't double-process the same bookings.
const SweepLockKey = "locks:assignment_sweep"

// SweepLockTTL bounds how long a crashed sweep holds the lock.
const SweepLockTTL = 10 * time.Minute
