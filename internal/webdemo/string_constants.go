package webdemo

const (
	stateIdle      = "idle"
	stateCapturing = "capturing"
	stateStopped   = "stopped"
	stateFinished  = "finished"

	axisAuto = "auto"
	axisX    = "x"
	axisY    = "y"
)
