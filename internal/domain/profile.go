package domain

import "time"

// Sex is the biological sex recorded during onboarding.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// WeightUnit is the unit used to display and enter set weights.
type WeightUnit string

const (
	WeightUnitKgs    WeightUnit = "Kgs"
	WeightUnitPounds WeightUnit = "Pounds"
)

// NotificationPrefs holds the three independent notification toggles.
type NotificationPrefs struct {
	WorkoutReminders bool `bson:"workoutReminders" json:"workoutReminders"`
	ProgressUpdates  bool `bson:"progressUpdates" json:"progressUpdates"`
	NewFeatures      bool `bson:"newFeatures" json:"newFeatures"`
}

// PaymentMethod is stored on the profile but not exercised by any flow yet.
type PaymentMethod struct {
	Type       string `bson:"type" json:"type"` // "card" or "paypal"
	Last4      string `bson:"last4,omitempty" json:"last4,omitempty"`
	ExpiryDate string `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
}

// UserProfile is the identity-scoped singleton row a user fills in during
// onboarding. It is created on first SetUserData (upsert) and updated by the
// profile editor afterwards; the client never deletes it.
type UserProfile struct {
	UserID            string            `bson:"_id" json:"-"`
	Name              string            `bson:"name" json:"name"`
	Email             string            `bson:"email" json:"email"`
	Height            float64           `bson:"height" json:"height"` // centimeters
	Sex               Sex               `bson:"sex" json:"sex"`
	WeightUnit        WeightUnit        `bson:"weightUnit" json:"weightUnit"`
	Notifications     NotificationPrefs `bson:"notifications" json:"notifications"`
	WeeklyWorkoutGoal int               `bson:"weeklyWorkoutGoal" json:"weeklyWorkoutGoal"`
	PaymentMethod     *PaymentMethod    `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Onboarded reports whether the profile carries enough data to skip the
// onboarding flow. A missing profile or an empty name both mean "no data".
func (p *UserProfile) Onboarded() bool {
	return p != nil && p.Name != ""
}
