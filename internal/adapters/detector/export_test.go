package detector

var DetectMode = detectMode
