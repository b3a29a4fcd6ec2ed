package repository

import (
	bookingRepo "cleanly/database/repository/booking"
	rejectionRepo "cleanly/database/repository/rejection"
	userRepo "cleanly/database/repository/user"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo

// Re-export the RejectionRepository interface and constructor.
type RejectionRepository = rejectionRepo.RejectionRepository

var NewMongoRejectionRepo = rejectionRepo.NewMongoRejectionRepo
