package models

import "time"

type User struct {
	ID              string    `json:"id" firestore:"-"`
	Email           string    `json:"email" firestore:"email"`
	Password        string    `json:"-" firestore:"password"`
	Name            string    `json:"name" firestore:"name"`
	Role            string    `json:"role" firestore:"role"` // customer, admin
	ProfileImage    string    `json:"profile_image,omitempty" firestore:"profileImage"`
	DeliveryAddress string    `json:"delivery_address,omitempty" firestore:"deliveryAddress"`
	PaymentMethod   string    `json:"payment_method,omitempty" firestore:"paymentMethod"`
	ShippingAddress string    `json:"shipping_address,omitempty" firestore:"shippingAddress"`
	ContactNumber   string    `json:"contact_number,omitempty" firestore:"contactNumber"`
	FCMToken        string    `json:"-" firestore:"fcmToken"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}
