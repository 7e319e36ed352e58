package tracker

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StateMean is the 8 element state vector (center x, center y, aspect ratio,
// height, and their per frame velocities)
type StateMean []float64

// StateCov is the 8x8 state covariance matrix
type StateCov struct {
	*mat.Dense
}

// KalmanFilter implements the constant velocity motion model used to
// estimate track state.  The filter predicts a track's box one frame
// forward and blends that prediction with an assigned detection.
type KalmanFilter struct {
	stdWeightPosition float64
	stdWeightVelocity float64
	motionMat         *mat.Dense
	updateMat         *mat.Dense
}

// NewKalmanFilter initializes and returns a new KalmanFilter
func NewKalmanFilter(stdWeightPosition, stdWeightVelocity float64) *KalmanFilter {

	ndim := 4

	// motion matrix is the identity with the velocity components placed
	// one frame ahead of their position components
	motionMat := mat.NewDense(8, 8, nil)

	for i := 0; i < 8; i++ {
		motionMat.Set(i, i, 1.0)
	}

	for i := 0; i < ndim; i++ {
		motionMat.Set(i, ndim+i, 1.0)
	}

	// updateMat projects the 8 dim state down to the 4 dim measurement
	updateMat := mat.NewDense(4, 8, nil)

	for i := 0; i < 4; i++ {
		updateMat.Set(i, i, 1.0)
	}

	return &KalmanFilter{
		stdWeightPosition: stdWeightPosition,
		stdWeightVelocity: stdWeightVelocity,
		motionMat:         motionMat,
		updateMat:         updateMat,
	}
}

// Initiate initializes the state mean and covariance from an unassociated
// measurement.  Velocity components start at zero, a newly created track
// has no velocity history.
func (kf *KalmanFilter) Initiate(mean StateMean, covariance *StateCov,
	measurement Xyah) {

	copy(mean[:4], measurement[:4])

	for i := 4; i < 8; i++ {
		mean[i] = 0.0
	}

	// initial uncertainty scales with the observed box height
	std := make(StateMean, 8)
	std[0] = 2 * kf.stdWeightPosition * measurement[3]
	std[1] = 2 * kf.stdWeightPosition * measurement[3]
	std[2] = 1e-2
	std[3] = 2 * kf.stdWeightPosition * measurement[3]
	std[4] = 10 * kf.stdWeightVelocity * measurement[3]
	std[5] = 10 * kf.stdWeightVelocity * measurement[3]
	std[6] = 1e-5
	std[7] = 10 * kf.stdWeightVelocity * measurement[3]

	for i := 0; i < 8; i++ {
		covariance.Set(i, i, std[i]*std[i])
	}
}

// Predict runs the constant velocity projection of the state mean and
// covariance one frame forward
func (kf *KalmanFilter) Predict(mean StateMean, covariance *StateCov) {

	std := make(StateMean, 8)
	std[0] = kf.stdWeightPosition * mean[3]
	std[1] = kf.stdWeightPosition * mean[3]
	std[2] = 1e-2
	std[3] = kf.stdWeightPosition * mean[3]
	std[4] = kf.stdWeightVelocity * mean[3]
	std[5] = kf.stdWeightVelocity * mean[3]
	std[6] = 1e-5
	std[7] = kf.stdWeightVelocity * mean[3]

	// process noise with variances on the diagonal
	motionCov := mat.NewDense(8, 8, nil)

	for i := 0; i < 8; i++ {
		motionCov.Set(i, i, std[i]*std[i])
	}

	// mean = F * mean
	meanMat := mat.NewDense(8, 1, nil)

	for i := 0; i < 8; i++ {
		meanMat.Set(i, 0, mean[i])
	}

	meanMat.Mul(kf.motionMat, meanMat)

	for i := 0; i < 8; i++ {
		mean[i] = meanMat.At(i, 0)
	}

	// covariance = F * covariance * F' + Q
	cov := covariance.Dense
	cov.Mul(kf.motionMat, cov)
	cov.Mul(cov, kf.motionMat.T())
	cov.Add(cov, motionCov)
}

// Update corrects the predicted state mean and covariance with an observed
// measurement
func (kf *KalmanFilter) Update(mean StateMean, covariance *StateCov,
	measurement Xyah) error {

	projectedMean, projectedCov := kf.project(mean, covariance)

	// Kalman gain is computed by solving against the Cholesky
	// factorization of the projected covariance
	chol := mat.Cholesky{}

	if ok := chol.Factorize(projectedCov); !ok {
		return errors.New("failed to factorize projected covariance")
	}

	B := mat.NewDense(8, 4, nil)
	B.Mul(covariance.Dense, kf.updateMat.T())

	var kalmanGain mat.Dense
	err := chol.SolveTo(&kalmanGain, B.T())

	if err != nil {
		return fmt.Errorf("failed to compute kalman gain: %w", err)
	}

	// innovation is the measurement residual
	innovation := make([]float64, 4)

	for i := 0; i < 4; i++ {
		innovation[i] = measurement[i] - projectedMean[i]
	}

	innovationVec := mat.NewVecDense(4, innovation)
	tmp := mat.NewVecDense(8, nil)
	tmp.MulVec(kalmanGain.T(), innovationVec)

	for i := 0; i < 8; i++ {
		mean[i] += tmp.AtVec(i)
	}

	// covariance = covariance - K * projectedCov * K'
	temp := mat.NewDense(8, 4, nil)
	temp.Mul(kalmanGain.T(), projectedCov)

	temp2 := mat.NewDense(8, 8, nil)
	temp2.Mul(temp, &kalmanGain)

	newCov := mat.NewDense(8, 8, nil)
	newCov.Sub(covariance.Dense, temp2)

	covariance.Dense = newCov

	return nil
}

// project maps the state mean and covariance into measurement space and
// adds the measurement noise
func (kf *KalmanFilter) project(mean StateMean,
	covariance *StateCov) (Xyah, *mat.SymDense) {

	std := make([]float64, 4)
	std[0] = kf.stdWeightPosition * mean[3]
	std[1] = kf.stdWeightPosition * mean[3]
	std[2] = 1e-1
	std[3] = kf.stdWeightPosition * mean[3]

	innovationCov := mat.NewSymDense(4, nil)

	for i := 0; i < 4; i++ {
		innovationCov.SetSym(i, i, std[i]*std[i])
	}

	// project the state mean to measurement space
	projectedMeanVec := mat.NewVecDense(4, nil)
	projectedMeanVec.MulVec(kf.updateMat, mat.NewVecDense(8, mean))

	// project the state covariance to measurement space
	temp := mat.NewDense(4, 8, nil)
	temp.Mul(kf.updateMat, covariance.Dense)
	temp2 := mat.NewDense(4, 4, nil)
	temp2.Mul(temp, kf.updateMat.T())

	projectedCov := mat.NewSymDense(4, nil)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			projectedCov.SetSym(i, j, temp2.At(i, j))
		}
	}

	projectedCov.AddSym(projectedCov, innovationCov)

	projectedMean := make(Xyah, 4)

	for i := 0; i < 4; i++ {
		projectedMean[i] = projectedMeanVec.AtVec(i)
	}

	return projectedMean, projectedCov
}
