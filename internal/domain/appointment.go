package domain

// StatusScheduled is the only appointment status: cancellation removes the
// record instead of transitioning it.
const StatusScheduled = "scheduled"

type Appointment struct {
	ID          string   `json:"appointment_id"`
	DoctorID    int      `json:"doctor_id"`
	PatientName string   `json:"patient_name"`
	PhoneNumber string   `json:"phone_number"`
	DateTime    DateTime `json:"datetime"`
	Status      string   `json:"status"`
}
