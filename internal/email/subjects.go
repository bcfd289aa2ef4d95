package email

const (
	subjectRFPUnlockedFmt = "Nuevo interés en su solicitud: %s"
)
