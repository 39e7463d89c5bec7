package domain

// Doctor is provisioned out-of-band and read-only to this service.
type Doctor struct {
	ID        int    `json:"doctor_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}
